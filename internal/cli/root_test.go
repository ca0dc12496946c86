package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/ember/internal/content"
	"github.com/julianstephens/ember/internal/models"
	"github.com/julianstephens/ember/internal/storage"
)

func setupTestContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "ember.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	profile := models.UserProfile{Name: "sam", Locale: "en", CreatedAt: time.Now()}
	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	return &Context{
		Store:   store,
		Content: content.NewService(nil, content.QuotaState{}, time.Local),
	}
}

func addHabit(t *testing.T, ctx *Context, h models.Habit) models.Habit {
	t.Helper()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	if err := ctx.Store.AddHabit(h); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	return h
}

func TestResolveHabit_ByIDAndTitle(t *testing.T) {
	ctx := setupTestContext(t)
	addHabit(t, ctx, models.Habit{ID: "h1", Title: "Run"})

	if h, err := ctx.ResolveHabit("h1"); err != nil || h.Title != "Run" {
		t.Errorf("resolve by ID failed: %+v %v", h, err)
	}
	if h, err := ctx.ResolveHabit("Run"); err != nil || h.ID != "h1" {
		t.Errorf("resolve by title failed: %+v %v", h, err)
	}
	if _, err := ctx.ResolveHabit("nope"); err == nil {
		t.Error("expected error for unknown ref")
	}
}

func TestCompleteHabit_PersistsEverything(t *testing.T) {
	ctx := setupTestContext(t)
	addHabit(t, ctx, models.Habit{ID: "h1", Title: "Run", IdentityTag: "Runner"})

	profile, _ := ctx.Store.GetProfile()
	profile.Identities = append(profile.Identities, models.NewIdentity("Runner"))
	if err := ctx.Store.SaveProfile(profile); err != nil {
		t.Fatal(err)
	}

	result, err := ctx.CompleteHabit("Run")
	if err != nil {
		t.Fatalf("CompleteHabit failed: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected a fresh completion to change state")
	}

	got, err := ctx.Store.GetHabit("h1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Streak != 1 || got.LastCompleted == nil {
		t.Errorf("habit not persisted: %+v", got)
	}

	reloaded, _ := ctx.Store.GetProfile()
	id := reloaded.IdentityByName("Runner")
	if id == nil || id.XP != 11 {
		t.Errorf("expected 11 XP persisted on identity, got %+v", id)
	}

	feed, _ := ctx.Store.GetFeed()
	if len(feed) == 0 {
		t.Error("expected a feed entry for the completion")
	}

	// Second completion the same day is a no-op
	again, err := ctx.CompleteHabit("Run")
	if err != nil {
		t.Fatal(err)
	}
	if again.Changed {
		t.Error("expected same-day completion to be idempotent")
	}
}

func TestCompleteHabit_ClearsPriorityPointer(t *testing.T) {
	ctx := setupTestContext(t)
	addHabit(t, ctx, models.Habit{ID: "h1", Title: "Run"})
	if err := ctx.Store.SetPriorityHabitID("h1"); err != nil {
		t.Fatal(err)
	}

	if _, err := ctx.CompleteHabit("h1"); err != nil {
		t.Fatal(err)
	}
	if pid, _ := ctx.Store.GetPriorityHabitID(); pid != "" {
		t.Errorf("expected priority pointer cleared, got %q", pid)
	}
}

func TestRollover_RunsOncePerDay(t *testing.T) {
	ctx := setupTestContext(t)

	twoDaysAgo := time.Now().AddDate(0, 0, -2)
	addHabit(t, ctx, models.Habit{
		ID: "h1", Title: "Run", Streak: 5, LongestStreak: 5,
		LastCompleted: &twoDaysAgo,
	})

	if err := ctx.Rollover(false); err != nil {
		t.Fatalf("rollover failed: %v", err)
	}

	got, _ := ctx.Store.GetHabit("h1")
	if got.Comeback == nil || got.Comeback.OriginalStreak != 5 {
		t.Fatalf("expected comeback challenge started, got %+v", got)
	}

	// Manually revert and check the pass does not run again today
	got.Comeback = nil
	got.Streak = 5
	if err := ctx.Store.UpdateHabit(got); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Rollover(false); err != nil {
		t.Fatal(err)
	}
	unchanged, _ := ctx.Store.GetHabit("h1")
	if unchanged.Comeback != nil {
		t.Error("expected second rollover the same day to be skipped")
	}

	// Forcing reruns the pass
	if err := ctx.Rollover(true); err != nil {
		t.Fatal(err)
	}
	forced, _ := ctx.Store.GetHabit("h1")
	if forced.Comeback == nil {
		t.Error("expected forced rollover to re-evaluate habits")
	}
}

func TestRollover_RegeneratesSquadQuests(t *testing.T) {
	ctx := setupTestContext(t)
	squad := models.Squad{
		ID: "s1", Name: "Crew", Members: []string{"sam"},
		QuestsDate: "2020-01-01",
		DailyQuests: []models.DailyQuest{
			{ID: "old", Title: "Old quest", Points: 5, IsCompleted: true, CompletedBy: "sam"},
		},
		CreatedAt: time.Now(),
	}
	if err := ctx.Store.AddSquad(squad); err != nil {
		t.Fatal(err)
	}

	if err := ctx.Rollover(false); err != nil {
		t.Fatal(err)
	}

	got, err := ctx.Store.GetSquad("s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.QuestsDate == "2020-01-01" {
		t.Fatal("expected quests date advanced")
	}
	for _, q := range got.DailyQuests {
		if q.IsCompleted || q.ID == "old" {
			t.Errorf("expected fresh unclaimed quests, got %+v", q)
		}
	}
}

func TestRollover_ExpiresOldMission(t *testing.T) {
	ctx := setupTestContext(t)
	mission := models.Mission{
		ID: "m1", HabitID: "h1", Title: "Old mission",
		TargetCompletions: 3,
		CreatedAt:         time.Now().AddDate(0, 0, -10),
	}
	if err := ctx.Store.SaveMission(mission); err != nil {
		t.Fatal(err)
	}

	if err := ctx.Rollover(false); err != nil {
		t.Fatal(err)
	}
	if m, _ := ctx.Store.GetActiveMission(); m != nil {
		t.Errorf("expected 10-day-old mission expired, got %+v", m)
	}
}
