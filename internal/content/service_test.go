package content

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/ember/internal/models"
)

// stubGenerator lets tests control remote behavior and observe call counts
type stubGenerator struct {
	mu        sync.Mutex
	calls     int
	fail      bool
	block     chan struct{} // when set, Translate blocks until closed
	translate string
}

func (s *stubGenerator) bump() {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

func (s *stubGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubGenerator) GenerateMission(context.Context, models.Habit, models.Habit, string) (MissionContent, error) {
	s.bump()
	if s.fail {
		return MissionContent{}, errors.New("remote down")
	}
	return MissionContent{Title: "remote mission", TargetCompletions: 4}, nil
}

func (s *stubGenerator) GenerateDailyBriefing(context.Context, string, []models.Habit, *models.Mission, string) (Briefing, error) {
	s.bump()
	if s.fail {
		return Briefing{}, errors.New("remote down")
	}
	return Briefing{Greeting: "remote greeting"}, nil
}

func (s *stubGenerator) GenerateMicroVersion(context.Context, string, string) (string, error) {
	s.bump()
	if s.fail {
		return "", errors.New("remote down")
	}
	return "remote micro", nil
}

func (s *stubGenerator) Translate(context.Context, string, string, string) (string, error) {
	s.bump()
	if s.block != nil {
		<-s.block
	}
	if s.fail {
		return "", errors.New("remote down")
	}
	return s.translate, nil
}

func newTestService(remote Generator) *Service {
	svc := NewService(remote, QuotaState{Limit: 5}, time.UTC)
	svc.nowFunc = func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_UsesRemoteWhenHealthy(t *testing.T) {
	remote := &stubGenerator{}
	svc := newTestService(remote)

	out := svc.GenerateMission(context.Background(), models.Habit{ID: "a", Title: "Run"}, models.Habit{ID: "b", Title: "Read"}, "en")
	if out.Title != "remote mission" {
		t.Errorf("expected remote content, got %q", out.Title)
	}
}

func TestService_FallsBackOnFailure(t *testing.T) {
	remote := &stubGenerator{fail: true}
	svc := newTestService(remote)

	out := svc.GenerateMission(context.Background(), models.Habit{ID: "a", Title: "Run"}, models.Habit{ID: "b", Title: "Read"}, "en")
	if out.Title != "Rebuild your Run habit" {
		t.Errorf("expected deterministic fallback, got %q", out.Title)
	}
	if out.TargetCompletions != 3 {
		t.Errorf("expected fallback target 3, got %d", out.TargetCompletions)
	}
}

func TestService_NoRemoteUsesFallback(t *testing.T) {
	svc := newTestService(nil)

	got := svc.GenerateMicroVersion(context.Background(), "Journaling", "en")
	if got != "Do two minutes of Journaling" {
		t.Errorf("expected fallback micro-version, got %q", got)
	}
}

func TestService_TranslateFallsBackToOriginalText(t *testing.T) {
	remote := &stubGenerator{fail: true}
	svc := newTestService(remote)

	got := svc.Translate(context.Background(), "hello", "fr", "en")
	if got != "hello" {
		t.Errorf("expected original text on failure, got %q", got)
	}
}

func TestService_QuotaExhaustionStopsRemoteCalls(t *testing.T) {
	remote := &stubGenerator{translate: "bonjour"}
	svc := NewService(remote, QuotaState{Limit: 2}, time.UTC)
	svc.nowFunc = func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC) }

	for i := 0; i < 5; i++ {
		svc.GenerateMicroVersion(context.Background(), "Run", "en")
	}
	if remote.callCount() != 2 {
		t.Errorf("expected exactly 2 remote calls under quota 2, got %d", remote.callCount())
	}
	if q := svc.Quota(); q.Used != 2 {
		t.Errorf("expected quota used 2, got %d", q.Used)
	}
}

func TestService_QuotaResetsOnNewCalendarDay(t *testing.T) {
	remote := &stubGenerator{translate: "bonjour"}
	// quota recorded as exhausted yesterday
	svc := NewService(remote, QuotaState{Limit: 1, Used: 1, Date: "2026-01-09"}, time.UTC)
	svc.nowFunc = func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC) }

	got := svc.Translate(context.Background(), "hello", "fr", "en")
	if got != "bonjour" {
		t.Errorf("expected quota reset to allow a remote call, got %q", got)
	}
	q := svc.Quota()
	if q.Date != "2026-01-10" || q.Used != 1 {
		t.Errorf("expected fresh quota for the new day, got %+v", q)
	}
}

func TestService_ConcurrentDuplicateCollapsed(t *testing.T) {
	block := make(chan struct{})
	remote := &stubGenerator{translate: "bonjour", block: block}
	svc := newTestService(remote)

	var wg sync.WaitGroup
	results := make([]string, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = svc.Translate(context.Background(), "hello", "fr", "en")
	}()

	// Wait until the first request is registered in flight
	for i := 0; i < 100; i++ {
		if remote.callCount() == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// The duplicate resolves immediately through the fallback
	results[1] = svc.Translate(context.Background(), "hello", "fr", "en")
	if results[1] != "hello" {
		t.Errorf("expected duplicate to use fallback, got %q", results[1])
	}

	close(block)
	wg.Wait()
	if results[0] != "bonjour" {
		t.Errorf("expected original request to use remote, got %q", results[0])
	}
	if remote.callCount() != 1 {
		t.Errorf("expected a single remote call, got %d", remote.callCount())
	}
}
