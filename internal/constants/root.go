package constants

// AppName and related identifiers
const (
	AppName            = "ember"
	Version            = "v0.3.0"
	DefaultConfigPath  = "~/.config/ember/ember.db"
	DefaultKeyringUser = "content-api-key"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Lockfile guarding the rollover pass
	LockfileName = "ember.lock"
)

// Streak mechanics
const (
	// MaxShields caps how many momentum shields a habit can hold
	MaxShields = 3

	// ShieldMilestoneDays grants a shield every N consecutive days
	ShieldMilestoneDays = 7

	// ComebackWindowDays is how many daily completions a comeback challenge requires
	ComebackWindowDays = 3

	// ComebackMinStreak is the smallest streak eligible for a comeback
	// challenge when broken (streaks of 1-2 hard reset instead)
	ComebackMinStreak = 3
)

// Identity progression
const (
	XPBaseAward = 10
	XPLevelStep = 100
)

// Missions
const (
	MissionMaxAgeDays = 7
	MissionMinHabits  = 2
	MissionMinTarget  = 3
	MissionMaxTarget  = 5
)

// Squads
const (
	SquadMaxMembers       = 5
	JoinApprovalQuorumCap = 2
	MomentumBaseAward     = 1
)

// Social feed
const (
	FeedMaxEntries = 20
)

// Content generation
const (
	DefaultDailyContentQuota = 20
	DefaultContentModel      = "gemini-2.0-flash"
)
