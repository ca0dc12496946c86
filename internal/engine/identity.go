package engine

import (
	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

// AddXP awards XP to an identity and applies the subtract-and-carry leveling
// loop: crossing xp >= level*100 increments the level and subtracts the
// pre-increment threshold, repeating until xp is below the current threshold.
// A single large award may cross several levels. Returns the updated identity
// and whether at least one level boundary was crossed.
func AddXP(identity models.UserIdentity, amount int) (models.UserIdentity, bool) {
	id := identity
	if id.Level < 1 {
		id.Level = 1
	}
	if amount < 0 {
		amount = 0
	}
	id.XP += amount

	leveled := false
	for id.XP >= id.Level*constants.XPLevelStep {
		id.XP -= id.Level * constants.XPLevelStep
		id.Level++
		leveled = true
	}
	return id, leveled
}
