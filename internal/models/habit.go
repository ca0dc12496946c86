package models

import "time"

// Cue is the time-of-day category a habit is anchored to
type Cue string

const (
	CueMorning   Cue = "morning"
	CueAfternoon Cue = "afternoon"
	CueEvening   Cue = "evening"
	CueAnytime   Cue = "anytime"
)

// ComebackChallenge is the 3-day probation a broken streak enters when it
// was long enough to be worth recovering. While active the habit's streak
// is pinned at zero; resolving it restores OriginalStreak+1.
type ComebackChallenge struct {
	IsActive       bool `json:"is_active"`
	DaysRemaining  int  `json:"days_remaining"`
	OriginalStreak int  `json:"original_streak"`
}

// Habit is a tracked daily practice with its full continuity state
type Habit struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IdentityTag string `json:"identity_tag,omitempty"`
	Cue         Cue    `json:"cue,omitempty"`

	Streak        int         `json:"streak"`
	LongestStreak int         `json:"longest_streak"`
	LastCompleted *time.Time  `json:"last_completed,omitempty"`
	Completions   []time.Time `json:"completions,omitempty"`

	MomentumShields int                `json:"momentum_shields"`
	Comeback        *ComebackChallenge `json:"comeback_challenge,omitempty"`

	// MicroVersion is a transient scaled-down suggestion; cleared on every
	// rollover and on completion, never carried across days
	MicroVersion string `json:"micro_version,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Clone returns a deep copy so engine functions can mutate freely without
// aliasing the caller's record
func (h Habit) Clone() Habit {
	c := h
	if h.LastCompleted != nil {
		t := *h.LastCompleted
		c.LastCompleted = &t
	}
	if h.Completions != nil {
		c.Completions = make([]time.Time, len(h.Completions))
		copy(c.Completions, h.Completions)
	}
	if h.Comeback != nil {
		cb := *h.Comeback
		c.Comeback = &cb
	}
	if h.DeletedAt != nil {
		t := *h.DeletedAt
		c.DeletedAt = &t
	}
	return c
}

// ComebackActive reports whether the habit is currently in a comeback window
func (h Habit) ComebackActive() bool {
	return h.Comeback != nil && h.Comeback.IsActive
}
