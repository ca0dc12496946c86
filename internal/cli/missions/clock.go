package missions

import "time"

// timeNow is a stub point for tests
var timeNow = time.Now
