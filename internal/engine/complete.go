package engine

import (
	"time"

	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

// CompletionResult carries the updated records and emitted events from a
// single completion. Identity, Mission, and Squad are nil when the caller
// passed nil (missing collaborators are per-sub-step no-ops) or when the
// completion was a same-day duplicate.
type CompletionResult struct {
	Habit    models.Habit
	Identity *models.UserIdentity
	Mission  *models.Mission
	Squad    *models.Squad
	Events   []Event
	// Changed is false when the habit was already completed today
	Changed bool
}

// Complete processes a single "mark done" event for a habit. It is pure:
// inputs are cloned, never mutated. Completing an already-completed-today
// habit returns the habit unchanged with no events.
//
// Rollover evaluation for the day must have already run, so the normal path
// only sees habits that are current or freshly restarted.
func Complete(habit models.Habit, identity *models.UserIdentity, mission *models.Mission, squad *models.Squad, now time.Time, loc *time.Location) CompletionResult {
	if habit.LastCompleted != nil && SameDay(*habit.LastCompleted, now, loc) {
		return CompletionResult{Habit: habit}
	}

	h := habit.Clone()
	var events []Event

	if h.ComebackActive() {
		h.Comeback.DaysRemaining--
		if h.Comeback.DaysRemaining <= 0 {
			h.Streak = h.Comeback.OriginalStreak + 1
			h.Comeback = nil
			events = append(events, Event{Type: EventComebackResolved, HabitID: h.ID, Value: h.Streak})
		} else {
			events = append(events, Event{Type: EventComebackProgressed, HabitID: h.ID, Value: h.Comeback.DaysRemaining})
		}
	} else {
		if h.LastCompleted != nil && IsYesterday(*h.LastCompleted, now, loc) {
			h.Streak++
		} else {
			h.Streak = 1
		}
		if h.Streak%constants.ShieldMilestoneDays == 0 && h.MomentumShields < constants.MaxShields {
			h.MomentumShields++
			events = append(events, Event{Type: EventShieldEarned, HabitID: h.ID, Value: h.MomentumShields})
		}
	}

	if h.Streak > h.LongestStreak {
		h.LongestStreak = h.Streak
	}
	completedAt := now
	h.LastCompleted = &completedAt
	h.Completions = append(h.Completions, completedAt)
	h.MicroVersion = ""

	result := CompletionResult{Habit: h, Changed: true}

	if mission != nil && !mission.IsCompleted && mission.HabitID == h.ID {
		m := *mission
		m.CurrentCompletions++
		if m.CurrentCompletions >= m.TargetCompletions {
			m.CurrentCompletions = m.TargetCompletions
			m.IsCompleted = true
			events = append(events, Event{Type: EventMissionCompleted, HabitID: h.ID, Value: m.Reward.Amount})
			if m.Reward.Type == models.RewardShield {
				h.MomentumShields = clampShields(h.MomentumShields + m.Reward.Amount)
			}
		}
		result.Mission = &m
	}

	if identity != nil {
		updated, leveled := AddXP(*identity, constants.XPBaseAward+h.Streak)
		if leveled {
			events = append(events, Event{Type: EventIdentityLeveledUp, HabitID: h.ID, Value: updated.Level})
		}
		result.Identity = &updated
	}

	if squad != nil {
		sq := squad.Clone()
		sq.SharedMomentum += constants.MomentumBaseAward + h.Streak
		result.Squad = &sq
	}

	result.Habit = h
	result.Events = events
	return result
}

func clampShields(n int) int {
	if n < 0 {
		return 0
	}
	if n > constants.MaxShields {
		return constants.MaxShields
	}
	return n
}
