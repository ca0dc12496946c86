package storage

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/ember/internal/models"
	"github.com/julianstephens/ember/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to the Provider contract, mapping the
// driver's row-not-found error to ErrNotFound.
type SQLiteStore struct {
	store *sqlite.Store
}

// NewSQLiteStore creates a new SQLite-backed provider
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

var _ Provider = (*SQLiteStore)(nil)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Lifecycle
func (s *SQLiteStore) Init() error          { return s.store.Init() }
func (s *SQLiteStore) Load() error          { return s.store.Load() }
func (s *SQLiteStore) Close() error         { return s.store.Close() }
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }

// Settings
func (s *SQLiteStore) GetSettings() (models.Settings, error)     { return s.store.GetSettings() }
func (s *SQLiteStore) SaveSettings(v models.Settings) error      { return s.store.SaveSettings(v) }

// Profile
func (s *SQLiteStore) GetProfile() (models.UserProfile, error) { return s.store.GetProfile() }
func (s *SQLiteStore) SaveProfile(p models.UserProfile) error  { return s.store.SaveProfile(p) }

// Habits
func (s *SQLiteStore) AddHabit(h models.Habit) error { return s.store.AddHabit(h) }
func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	h, err := s.store.GetHabit(id)
	return h, notFound(err)
}
func (s *SQLiteStore) GetHabitByTitle(title string) (models.Habit, error) {
	h, err := s.store.GetHabitByTitle(title)
	return h, notFound(err)
}
func (s *SQLiteStore) GetAllHabits(includeDeleted bool) ([]models.Habit, error) {
	return s.store.GetAllHabits(includeDeleted)
}
func (s *SQLiteStore) UpdateHabit(h models.Habit) error { return s.store.UpdateHabit(h) }
func (s *SQLiteStore) DeleteHabit(id string) error      { return notFound(s.store.DeleteHabit(id)) }

// Mission
func (s *SQLiteStore) GetActiveMission() (*models.Mission, error) { return s.store.GetActiveMission() }
func (s *SQLiteStore) SaveMission(m models.Mission) error         { return s.store.SaveMission(m) }
func (s *SQLiteStore) ClearMission() error                        { return s.store.ClearMission() }

// Squads
func (s *SQLiteStore) AddSquad(sq models.Squad) error { return s.store.AddSquad(sq) }
func (s *SQLiteStore) GetSquad(id string) (models.Squad, error) {
	sq, err := s.store.GetSquad(id)
	return sq, notFound(err)
}
func (s *SQLiteStore) GetAllSquads() ([]models.Squad, error) { return s.store.GetAllSquads() }
func (s *SQLiteStore) UpdateSquad(sq models.Squad) error     { return s.store.UpdateSquad(sq) }

// Feed and chat
func (s *SQLiteStore) AddRipple(r models.RippleEvent) error     { return s.store.AddRipple(r) }
func (s *SQLiteStore) GetFeed() ([]models.RippleEvent, error)   { return s.store.GetFeed() }
func (s *SQLiteStore) AddChatMessage(m models.ChatMessage) error { return s.store.AddChatMessage(m) }
func (s *SQLiteStore) GetChatMessages(squadID string) ([]models.ChatMessage, error) {
	return s.store.GetChatMessages(squadID)
}

// Teams
func (s *SQLiteStore) GetTeams() ([]models.Team, error)    { return s.store.GetTeams() }
func (s *SQLiteStore) SaveTeam(t models.Team) error        { return s.store.SaveTeam(t) }
func (s *SQLiteStore) GetTeamChallenges() ([]models.TeamChallenge, error) {
	return s.store.GetTeamChallenges()
}
func (s *SQLiteStore) SaveTeamChallenge(c models.TeamChallenge) error {
	return s.store.SaveTeamChallenge(c)
}

// Priority pointer
func (s *SQLiteStore) GetPriorityHabitID() (string, error) { return s.store.GetPriorityHabitID() }
func (s *SQLiteStore) SetPriorityHabitID(id string) error  { return s.store.SetPriorityHabitID(id) }
func (s *SQLiteStore) ClearPriorityHabit() error           { return s.store.ClearPriorityHabit() }
