package engine

import (
	"testing"
	"time"

	"github.com/julianstephens/ember/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluateRollover_NeverCompletedIsNeverBroken(t *testing.T) {
	loc := time.UTC
	habit := models.Habit{ID: "h1", Title: "Read", MicroVersion: "Read one page"}

	updated, events := EvaluateRollover(habit, date(2026, 1, 10, 8), loc)

	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
	if updated.Streak != 0 || updated.Comeback != nil {
		t.Errorf("expected untouched streak state, got %+v", updated)
	}
	if updated.MicroVersion != "" {
		t.Error("expected micro-version cleared on rollover")
	}
}

func TestEvaluateRollover_CompletedTodayOrYesterdayIsCurrent(t *testing.T) {
	loc := time.UTC
	now := date(2026, 1, 10, 8)

	for _, last := range []time.Time{date(2026, 1, 10, 6), date(2026, 1, 9, 22)} {
		habit := models.Habit{ID: "h1", Streak: 4, LongestStreak: 4, LastCompleted: timePtr(last)}
		updated, events := EvaluateRollover(habit, now, loc)
		if len(events) != 0 {
			t.Errorf("last=%v: expected no events, got %v", last, events)
		}
		if updated.Streak != 4 {
			t.Errorf("last=%v: expected streak preserved, got %d", last, updated.Streak)
		}
	}
}

func TestEvaluateRollover_ShieldConsumedOnMissedDay(t *testing.T) {
	loc := time.UTC
	now := date(2026, 1, 10, 8)
	habit := models.Habit{
		ID:              "h1",
		Streak:          5,
		LongestStreak:   5,
		MomentumShields: 2,
		LastCompleted:   timePtr(date(2026, 1, 8, 20)),
		Completions:     []time.Time{date(2026, 1, 8, 20)},
	}

	updated, events := EvaluateRollover(habit, now, loc)

	if len(events) != 1 || events[0].Type != EventShieldConsumed {
		t.Fatalf("expected ShieldConsumed, got %v", events)
	}
	if updated.MomentumShields != 1 {
		t.Errorf("expected 1 shield left, got %d", updated.MomentumShields)
	}
	if updated.Streak != 5 {
		t.Errorf("expected streak preserved at 5, got %d", updated.Streak)
	}
	// lastCompleted is backfilled to yesterday so the streak survives the
	// next evaluation, but no completion entry is recorded
	if updated.LastCompleted == nil || !IsYesterday(*updated.LastCompleted, now, loc) {
		t.Errorf("expected lastCompleted backfilled to yesterday, got %v", updated.LastCompleted)
	}
	if len(updated.Completions) != 1 {
		t.Errorf("expected completions history untouched, got %d entries", len(updated.Completions))
	}
}

func TestEvaluateRollover_ComebackStartedForLongStreak(t *testing.T) {
	loc := time.UTC
	// streak=5, no shields, last completed two days ago
	habit := models.Habit{
		ID:            "h1",
		Streak:        5,
		LongestStreak: 5,
		LastCompleted: timePtr(date(2026, 1, 8, 20)),
	}

	updated, events := EvaluateRollover(habit, date(2026, 1, 10, 8), loc)

	if len(events) != 1 || events[0].Type != EventComebackStarted || events[0].Value != 5 {
		t.Fatalf("expected ComebackStarted with original streak 5, got %v", events)
	}
	if updated.Streak != 0 {
		t.Errorf("expected streak pinned at 0, got %d", updated.Streak)
	}
	cb := updated.Comeback
	if cb == nil || !cb.IsActive || cb.DaysRemaining != 3 || cb.OriginalStreak != 5 {
		t.Errorf("expected comeback {active, 3 days, original 5}, got %+v", cb)
	}
}

func TestEvaluateRollover_StreakOfThreeStillGetsComeback(t *testing.T) {
	loc := time.UTC
	habit := models.Habit{ID: "h1", Streak: 3, LongestStreak: 3, LastCompleted: timePtr(date(2026, 1, 7, 9))}

	updated, events := EvaluateRollover(habit, date(2026, 1, 10, 8), loc)

	if len(events) != 1 || events[0].Type != EventComebackStarted {
		t.Fatalf("expected ComebackStarted for streak 3, got %v", events)
	}
	if updated.Comeback == nil || updated.Comeback.OriginalStreak != 3 {
		t.Errorf("expected original streak 3, got %+v", updated.Comeback)
	}
}

func TestEvaluateRollover_ShortStreakHardResets(t *testing.T) {
	loc := time.UTC

	for _, streak := range []int{1, 2} {
		habit := models.Habit{ID: "h1", Streak: streak, LongestStreak: streak, LastCompleted: timePtr(date(2026, 1, 8, 9))}
		updated, events := EvaluateRollover(habit, date(2026, 1, 10, 8), loc)

		if len(events) != 1 || events[0].Type != EventStreakBroken {
			t.Fatalf("streak=%d: expected StreakBroken, got %v", streak, events)
		}
		if updated.Streak != 0 || updated.Comeback != nil {
			t.Errorf("streak=%d: expected hard reset to 0, got %+v", streak, updated)
		}
		if updated.LongestStreak != streak {
			t.Errorf("streak=%d: expected longest streak preserved, got %d", streak, updated.LongestStreak)
		}
	}
}

func TestEvaluateRollover_ComebackFailsWhenDayMissed(t *testing.T) {
	loc := time.UTC
	habit := models.Habit{
		ID:            "h1",
		Streak:        0,
		LongestStreak: 8,
		Comeback:      &models.ComebackChallenge{IsActive: true, DaysRemaining: 2, OriginalStreak: 8},
		LastCompleted: timePtr(date(2026, 1, 8, 9)),
	}

	updated, events := EvaluateRollover(habit, date(2026, 1, 10, 8), loc)

	if len(events) != 1 || events[0].Type != EventComebackFailed {
		t.Fatalf("expected ComebackFailed, got %v", events)
	}
	if updated.Comeback != nil {
		t.Error("expected comeback record cleared")
	}
	if updated.Streak != 0 {
		t.Errorf("expected streak 0 after failed comeback, got %d", updated.Streak)
	}
}

func TestEvaluateRollover_ComebackSurvivesWhenCurrent(t *testing.T) {
	loc := time.UTC
	habit := models.Habit{
		ID:            "h1",
		Comeback:      &models.ComebackChallenge{IsActive: true, DaysRemaining: 2, OriginalStreak: 8},
		LastCompleted: timePtr(date(2026, 1, 9, 9)),
	}

	updated, events := EvaluateRollover(habit, date(2026, 1, 10, 8), loc)

	if len(events) != 0 {
		t.Fatalf("expected no events for an on-track comeback, got %v", events)
	}
	if updated.Comeback == nil || updated.Comeback.DaysRemaining != 2 {
		t.Errorf("expected comeback unchanged, got %+v", updated.Comeback)
	}
}

func TestEvaluateRollover_NoShieldWhileComebackActive(t *testing.T) {
	loc := time.UTC
	// shields are only consumed when no comeback challenge is active
	habit := models.Habit{
		ID:              "h1",
		MomentumShields: 3,
		Comeback:        &models.ComebackChallenge{IsActive: true, DaysRemaining: 3, OriginalStreak: 6},
		LastCompleted:   timePtr(date(2026, 1, 7, 9)),
	}

	updated, events := EvaluateRollover(habit, date(2026, 1, 10, 8), loc)

	if len(events) != 1 || events[0].Type != EventComebackFailed {
		t.Fatalf("expected ComebackFailed, got %v", events)
	}
	if updated.MomentumShields != 3 {
		t.Errorf("expected shields untouched during comeback, got %d", updated.MomentumShields)
	}
}

func TestEvaluateRollover_DoesNotMutateInput(t *testing.T) {
	loc := time.UTC
	habit := models.Habit{
		ID:              "h1",
		Streak:          5,
		LongestStreak:   5,
		MomentumShields: 1,
		MicroVersion:    "tiny",
		LastCompleted:   timePtr(date(2026, 1, 8, 9)),
	}

	_, _ = EvaluateRollover(habit, date(2026, 1, 10, 8), loc)

	if habit.MomentumShields != 1 || habit.MicroVersion != "tiny" || habit.Streak != 5 {
		t.Errorf("input habit was mutated: %+v", habit)
	}
}
