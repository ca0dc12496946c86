package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

func newTestJSONStore(t *testing.T) (*JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ember.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store, path
}

func TestJSONStore_InitRefusesExisting(t *testing.T) {
	_, path := newTestJSONStore(t)

	again := NewJSONStore(path)
	if err := again.Init(); err == nil {
		t.Error("expected Init on existing file to fail")
	}
}

func TestJSONStore_PersistsAcrossLoads(t *testing.T) {
	store, path := newTestJSONStore(t)

	last := time.Date(2026, 1, 9, 7, 30, 0, 0, time.UTC)
	habit := models.Habit{
		ID:            "h1",
		Title:         "Stretch",
		Streak:        3,
		LastCompleted: &last,
		Comeback:      &models.ComebackChallenge{IsActive: true, DaysRemaining: 1, OriginalStreak: 4},
		CreatedAt:     time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatal(err)
	}
	if err := store.SetPriorityHabitID("h1"); err != nil {
		t.Fatal(err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reopened.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit after reload failed: %v", err)
	}
	if got.Streak != 3 || got.Comeback == nil || got.Comeback.OriginalStreak != 4 {
		t.Errorf("habit lost across reload: %+v", got)
	}
	if id, _ := reopened.GetPriorityHabitID(); id != "h1" {
		t.Errorf("priority pointer lost across reload: %q", id)
	}
}

func TestJSONStore_LoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "ember.json"))
	if err := store.Load(); err == nil {
		t.Error("expected Load of missing file to fail")
	}
}

func TestJSONStore_DeleteHabitSoftDeletes(t *testing.T) {
	store, _ := newTestJSONStore(t)
	if err := store.AddHabit(models.Habit{ID: "h1", Title: "Read", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteHabit("h1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetHabit("h1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteHabit("h1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected re-delete to report not found, got %v", err)
	}

	all, err := store.GetAllHabits(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Errorf("expected soft-deleted habit retained, got %+v", all)
	}
}

func TestJSONStore_HabitsSortedByCreation(t *testing.T) {
	store, _ := newTestJSONStore(t)
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	offsets := map[string]int{"a": 0, "b": 1, "c": 2}
	for _, id := range []string{"c", "a", "b"} {
		h := models.Habit{ID: id, Title: id, CreatedAt: base.AddDate(0, 0, offsets[id])}
		if err := store.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	habits, err := store.GetAllHabits(false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	for i, h := range habits {
		if h.ID != want[i] {
			t.Fatalf("expected creation order %v, got %+v", want, habits)
		}
	}
}

func TestJSONStore_FeedBounded(t *testing.T) {
	store, _ := newTestJSONStore(t)
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < constants.FeedMaxEntries+3; i++ {
		r := models.RippleEvent{ID: base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339), Message: "ripple", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.AddRipple(r); err != nil {
			t.Fatal(err)
		}
	}

	feed, err := store.GetFeed()
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != constants.FeedMaxEntries {
		t.Errorf("expected feed bounded to %d, got %d", constants.FeedMaxEntries, len(feed))
	}
	if !feed[0].CreatedAt.After(feed[len(feed)-1].CreatedAt) {
		t.Error("expected feed ordered newest first")
	}
}

func TestJSONStore_MissionLifecycle(t *testing.T) {
	store, _ := newTestJSONStore(t)

	if m, err := store.GetActiveMission(); err != nil || m != nil {
		t.Fatalf("expected no mission, got %+v %v", m, err)
	}
	mission := models.Mission{ID: "m1", HabitID: "h1", Title: "Rebuild", TargetCompletions: 3, CreatedAt: time.Now()}
	if err := store.SaveMission(mission); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetActiveMission()
	if err != nil || got == nil || got.ID != "m1" {
		t.Fatalf("mission round trip failed: %+v %v", got, err)
	}
	if err := store.ClearMission(); err != nil {
		t.Fatal(err)
	}
	if m, _ := store.GetActiveMission(); m != nil {
		t.Errorf("expected mission cleared, got %+v", m)
	}
}

func TestJSONStore_ChatFiltersBySquad(t *testing.T) {
	store, _ := newTestJSONStore(t)
	now := time.Now()
	msgs := []models.ChatMessage{
		{ID: "1", SquadID: "s1", Sender: "ana", Text: "hi", CreatedAt: now},
		{ID: "2", SquadID: "s2", Sender: "bo", Text: "yo", CreatedAt: now},
		{ID: "3", SquadID: "s1", Sender: "system", Text: "cy joined", System: true, CreatedAt: now},
	}
	for _, m := range msgs {
		if err := store.AddChatMessage(m); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.GetChatMessages("s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages for s1, got %d", len(got))
	}
	if !got[1].System {
		t.Error("expected system flag preserved")
	}
}
