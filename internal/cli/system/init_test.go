package system

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/content"
	"github.com/julianstephens/ember/internal/storage"
)

func setupTestInitStore(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "ember.db"))
	t.Cleanup(func() { store.Close() })
	return &cli.Context{
		Store:   store,
		Content: content.NewService(nil, content.QuotaState{}, time.Local),
	}
}

func TestInitCmd_CreatesProfileAndSeedsTeams(t *testing.T) {
	ctx := setupTestInitStore(t)

	cmd := &InitCmd{Name: "sam", Timezone: "Local", Locale: "en"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if profile.Name != "sam" || profile.Locale != "en" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("timezone not saved: %q", settings.Timezone)
	}

	teams, err := ctx.Store.GetTeams()
	if err != nil {
		t.Fatal(err)
	}
	if len(teams) == 0 {
		t.Error("expected seeded teams")
	}
	challenges, err := ctx.Store.GetTeamChallenges()
	if err != nil {
		t.Fatal(err)
	}
	if len(challenges) == 0 {
		t.Error("expected a seeded team challenge")
	}
}

func TestInitCmd_RejectsInvalidTimezone(t *testing.T) {
	ctx := setupTestInitStore(t)

	cmd := &InitCmd{Name: "sam", Timezone: "Mars/Olympus"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected invalid timezone to fail")
	}
}

func TestDoctorCmd_HealthyStore(t *testing.T) {
	ctx := setupTestInitStore(t)

	if err := (&InitCmd{Name: "sam", Timezone: "Local"}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor reported errors on a healthy store: %v", err)
	}
}
