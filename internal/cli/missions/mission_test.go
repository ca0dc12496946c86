package missions

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/content"
	"github.com/julianstephens/ember/internal/models"
	"github.com/julianstephens/ember/internal/storage"
)

func setupMissionContext(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "ember.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	profile := models.UserProfile{Name: "sam", Locale: "en", CreatedAt: time.Now()}
	if err := store.SaveProfile(profile); err != nil {
		t.Fatal(err)
	}
	return &cli.Context{
		Store:   store,
		Content: content.NewService(nil, content.QuotaState{}, time.Local),
	}
}

func addMissionHabits(t *testing.T, ctx *cli.Context) {
	t.Helper()
	for _, h := range []models.Habit{
		{ID: "h1", Title: "Run", CreatedAt: time.Now()},
		{ID: "h2", Title: "Read", Streak: 9, LongestStreak: 9, CreatedAt: time.Now()},
	} {
		if err := ctx.Store.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMissionStatus_RequiresTwoHabits(t *testing.T) {
	ctx := setupMissionContext(t)
	if err := ctx.Store.AddHabit(models.Habit{ID: "h1", Title: "Run", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	if err := (&MissionStatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if m, _ := ctx.Store.GetActiveMission(); m != nil {
		t.Errorf("expected no mission with a single habit, got %+v", m)
	}
}

func TestMissionStatus_GeneratesTargetingLeastConsistentHabit(t *testing.T) {
	ctx := setupMissionContext(t)
	addMissionHabits(t, ctx)

	if err := (&MissionStatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	mission, err := ctx.Store.GetActiveMission()
	if err != nil || mission == nil {
		t.Fatalf("expected a generated mission, got %v %v", mission, err)
	}
	if mission.HabitID != "h1" {
		t.Errorf("expected mission on the least consistent habit, got %q", mission.HabitID)
	}
	if mission.TargetCompletions < 3 || mission.TargetCompletions > 5 {
		t.Errorf("target out of range: %d", mission.TargetCompletions)
	}
}

func TestMissionStatus_GeneratesAgainAfterCompletion(t *testing.T) {
	ctx := setupMissionContext(t)
	addMissionHabits(t, ctx)

	if err := (&MissionStatusCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	first, _ := ctx.Store.GetActiveMission()
	if first == nil {
		t.Fatal("expected a generated mission")
	}

	// One completion away from the target, then finish it
	first.CurrentCompletions = first.TargetCompletions - 1
	if err := ctx.Store.SaveMission(*first); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.CompleteHabit(first.HabitID); err != nil {
		t.Fatal(err)
	}

	habit, err := ctx.Store.GetHabit(first.HabitID)
	if err != nil {
		t.Fatal(err)
	}
	if habit.MomentumShields != 1 {
		t.Errorf("expected the shield reward applied, got %d shields", habit.MomentumShields)
	}

	// The finished mission is destroyed, freeing the single active slot
	if m, _ := ctx.Store.GetActiveMission(); m != nil {
		t.Fatalf("expected completed mission cleared, got %+v", m)
	}
	if err := (&MissionStatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("second status failed: %v", err)
	}
	second, _ := ctx.Store.GetActiveMission()
	if second == nil {
		t.Fatal("expected a fresh mission after the first completed")
	}
	if second.ID == first.ID {
		t.Error("expected a new mission, got the old one back")
	}
}
