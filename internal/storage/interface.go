package storage

import (
	"errors"

	"github.com/julianstephens/ember/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist. Callers
// in the completion path treat it as a skip-this-sub-step signal, never a
// hard failure.
var ErrNotFound = errors.New("record not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profile
	GetProfile() (models.UserProfile, error)
	SaveProfile(models.UserProfile) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByTitle(title string) (models.Habit, error)
	GetAllHabits(includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Active mission (at most one)
	GetActiveMission() (*models.Mission, error)
	SaveMission(models.Mission) error
	ClearMission() error

	// Squads
	AddSquad(models.Squad) error
	GetSquad(id string) (models.Squad, error)
	GetAllSquads() ([]models.Squad, error)
	UpdateSquad(models.Squad) error

	// Activity feed, bounded to the most recent entries
	AddRipple(models.RippleEvent) error
	GetFeed() ([]models.RippleEvent, error)

	// Squad chat
	AddChatMessage(models.ChatMessage) error
	GetChatMessages(squadID string) ([]models.ChatMessage, error)

	// Teams (locally seeded)
	GetTeams() ([]models.Team, error)
	SaveTeam(models.Team) error
	GetTeamChallenges() ([]models.TeamChallenge, error)
	SaveTeamChallenge(models.TeamChallenge) error

	// Priority habit pointer; empty string when unset
	GetPriorityHabitID() (string, error)
	SetPriorityHabitID(id string) error
	ClearPriorityHabit() error

	// Utils
	GetConfigPath() string
}
