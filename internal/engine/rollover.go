package engine

import (
	"time"

	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

// EvaluateRollover applies the day-boundary rules to a single habit. It is a
// pure function: the input habit is never mutated, and the same inputs always
// produce the same output. It runs once per habit per detected day boundary,
// before any completion for that habit is accepted.
//
// Priority order:
//  1. clear the transient micro-version
//  2. an active comeback challenge whose day was missed fails outright
//  3. a live streak whose day was missed consumes a shield if one is held,
//     otherwise converts to a comeback challenge (streak > 2) or resets
//  4. a current habit, or one with no history, is left alone
func EvaluateRollover(habit models.Habit, now time.Time, loc *time.Location) (models.Habit, []Event) {
	h := habit.Clone()
	h.MicroVersion = ""

	// A habit never completed cannot be broken
	if h.LastCompleted == nil {
		return h, nil
	}
	last := *h.LastCompleted
	if SameDay(last, now, loc) || IsYesterday(last, now, loc) {
		return h, nil
	}

	// At least one full day was skipped
	if h.ComebackActive() {
		h.Comeback = nil
		h.Streak = 0
		return h, []Event{{Type: EventComebackFailed, HabitID: h.ID}}
	}

	if h.Streak <= 0 {
		return h, nil
	}

	if h.MomentumShields > 0 {
		// Consume a shield and backfill lastCompleted to yesterday so the
		// streak survives the next evaluation. The shielded day is not
		// appended to the completions history.
		h.MomentumShields--
		yesterday := StartOfDay(now, loc).AddDate(0, 0, -1)
		h.LastCompleted = &yesterday
		return h, []Event{{Type: EventShieldConsumed, HabitID: h.ID, Value: h.MomentumShields}}
	}

	if h.Streak >= constants.ComebackMinStreak {
		original := h.Streak
		h.Streak = 0
		h.Comeback = &models.ComebackChallenge{
			IsActive:       true,
			DaysRemaining:  constants.ComebackWindowDays,
			OriginalStreak: original,
		}
		return h, []Event{{Type: EventComebackStarted, HabitID: h.ID, Value: original}}
	}

	h.Streak = 0
	return h, []Event{{Type: EventStreakBroken, HabitID: h.ID}}
}
