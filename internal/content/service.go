package content

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/logger"
	"github.com/julianstephens/ember/internal/models"
)

// QuotaState is the persisted daily call budget. The counter resets when
// Date no longer matches today's calendar day (never by wall-clock timers).
type QuotaState struct {
	Limit int
	Used  int
	Date  string // YYYY-MM-DD
}

// Service wraps a remote Generator with the engine's reliability rules:
// every call is gated by the daily quota, duplicate concurrent requests for
// the same (message, locale) pair are collapsed, and any remote failure is
// replaced by the deterministic fallback. Service itself never returns an
// error from generation methods.
type Service struct {
	remote   Generator // nil when no API key is configured
	fallback Fallback
	loc      *time.Location

	mu       sync.Mutex
	inFlight map[string]struct{}
	quota    QuotaState

	nowFunc func() time.Time
}

// NewService builds a Service. remote may be nil, in which case every call
// resolves through the fallback.
func NewService(remote Generator, quota QuotaState, loc *time.Location) *Service {
	if quota.Limit <= 0 {
		quota.Limit = constants.DefaultDailyContentQuota
	}
	return &Service{
		remote:   remote,
		loc:      loc,
		inFlight: make(map[string]struct{}),
		quota:    quota,
		nowFunc:  time.Now,
	}
}

// Quota returns the current quota state for persistence.
func (s *Service) Quota() QuotaState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quota
}

// acquire reserves a remote call slot for key. It returns false when the
// remote is unavailable, the key is already in flight, or the daily quota
// is exhausted.
func (s *Service) acquire(key string) bool {
	if s.remote == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.nowFunc().In(s.loc).Format(constants.DateFormat)
	if s.quota.Date != today {
		s.quota.Date = today
		s.quota.Used = 0
	}
	if s.quota.Used >= s.quota.Limit {
		logger.Debug("content quota exhausted", "used", s.quota.Used, "limit", s.quota.Limit)
		return false
	}
	if _, busy := s.inFlight[key]; busy {
		logger.Debug("duplicate content request collapsed", "key", key)
		return false
	}
	s.inFlight[key] = struct{}{}
	s.quota.Used++
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}

// GenerateMission produces mission content, falling back to the local
// template on any failure.
func (s *Service) GenerateMission(ctx context.Context, least, most models.Habit, locale string) MissionContent {
	key := "mission|" + least.ID + "|" + most.ID + "|" + locale
	if s.acquire(key) {
		defer s.release(key)
		if out, err := s.remote.GenerateMission(ctx, least, most, locale); err == nil {
			return out
		} else {
			logger.Warn("mission generation failed, using fallback", "error", err)
		}
	}
	out, _ := s.fallback.GenerateMission(ctx, least, most, locale)
	return out
}

// GenerateDailyBriefing produces the day's greeting, falling back locally.
func (s *Service) GenerateDailyBriefing(ctx context.Context, userName string, habits []models.Habit, mission *models.Mission, locale string) Briefing {
	key := "briefing|" + userName + "|" + locale
	if s.acquire(key) {
		defer s.release(key)
		if out, err := s.remote.GenerateDailyBriefing(ctx, userName, habits, mission, locale); err == nil {
			return out
		} else {
			logger.Warn("briefing generation failed, using fallback", "error", err)
		}
	}
	out, _ := s.fallback.GenerateDailyBriefing(ctx, userName, habits, mission, locale)
	return out
}

// GenerateMicroVersion produces a scaled-down habit suggestion.
func (s *Service) GenerateMicroVersion(ctx context.Context, habitTitle, locale string) string {
	key := "micro|" + habitTitle + "|" + locale
	if s.acquire(key) {
		defer s.release(key)
		if out, err := s.remote.GenerateMicroVersion(ctx, habitTitle, locale); err == nil {
			return out
		} else {
			logger.Warn("micro-version generation failed, using fallback", "error", err)
		}
	}
	out, _ := s.fallback.GenerateMicroVersion(ctx, habitTitle, locale)
	return out
}

// Translate translates text, returning it unchanged on any failure.
func (s *Service) Translate(ctx context.Context, text, targetLocale, sourceLocale string) string {
	key := "translate|" + text + "|" + targetLocale
	if s.acquire(key) {
		defer s.release(key)
		if out, err := s.remote.Translate(ctx, text, targetLocale, sourceLocale); err == nil {
			return out
		} else {
			logger.Warn("translation failed, using fallback", "error", err)
		}
	}
	return text
}
