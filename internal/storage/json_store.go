package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

// Blob mirrors the original key-per-collection layout: one JSON document
// with a key for each top-level collection.
type Blob struct {
	Version        int                    `json:"version"`
	Settings       models.Settings        `json:"settings"`
	Profile        *models.UserProfile    `json:"profile,omitempty"`
	Habits         map[string]models.Habit `json:"habits"`
	Squads         map[string]models.Squad `json:"squads"`
	Mission        *models.Mission        `json:"mission,omitempty"`
	Feed           []models.RippleEvent   `json:"feed,omitempty"`
	Chat           []models.ChatMessage   `json:"chat,omitempty"`
	Teams          []models.Team          `json:"teams,omitempty"`
	TeamChallenges []models.TeamChallenge `json:"team_challenges,omitempty"`
	PriorityHabit  string                 `json:"priority_habit_id,omitempty"`
}

// JSONStore is the file-backed provider, useful for debugging and data
// interchange. Every mutation writes the whole document back.
type JSONStore struct {
	path string
	blob *Blob
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

var _ Provider = (*JSONStore)(nil)

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.blob = &Blob{
		Version: 1,
		Settings: models.Settings{
			Timezone:          "Local",
			DailyContentQuota: constants.DefaultDailyContentQuota,
		},
		Habits: make(map[string]models.Habit),
		Squads: make(map[string]models.Squad),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	if s.blob != nil {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'ember init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.blob = &Blob{}
	if err := json.Unmarshal(data, s.blob); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if s.blob.Habits == nil {
		s.blob.Habits = make(map[string]models.Habit)
	}
	if s.blob.Squads == nil {
		s.blob.Squads = make(map[string]models.Squad)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) GetConfigPath() string { return s.path }

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.blob, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Settings

func (s *JSONStore) GetSettings() (models.Settings, error) {
	return s.blob.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.blob.Settings = settings
	return s.save()
}

// Profile

func (s *JSONStore) GetProfile() (models.UserProfile, error) {
	if s.blob.Profile == nil {
		return models.UserProfile{}, fmt.Errorf("profile not found")
	}
	return *s.blob.Profile, nil
}

func (s *JSONStore) SaveProfile(p models.UserProfile) error {
	s.blob.Profile = &p
	return s.save()
}

// Habits

func (s *JSONStore) AddHabit(h models.Habit) error {
	s.blob.Habits[h.ID] = h
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	h, ok := s.blob.Habits[id]
	if !ok || h.DeletedAt != nil {
		return models.Habit{}, ErrNotFound
	}
	return h, nil
}

func (s *JSONStore) GetHabitByTitle(title string) (models.Habit, error) {
	for _, h := range s.blob.Habits {
		if h.Title == title && h.DeletedAt == nil {
			return h, nil
		}
	}
	return models.Habit{}, ErrNotFound
}

func (s *JSONStore) GetAllHabits(includeDeleted bool) ([]models.Habit, error) {
	var habits []models.Habit
	for _, h := range s.blob.Habits {
		if !includeDeleted && h.DeletedAt != nil {
			continue
		}
		habits = append(habits, h)
	}
	sortByCreation(habits)
	return habits, nil
}

func (s *JSONStore) UpdateHabit(h models.Habit) error {
	s.blob.Habits[h.ID] = h
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	h, ok := s.blob.Habits[id]
	if !ok || h.DeletedAt != nil {
		return ErrNotFound
	}
	now := timeNow()
	h.DeletedAt = &now
	s.blob.Habits[id] = h
	return s.save()
}

// Mission

func (s *JSONStore) GetActiveMission() (*models.Mission, error) {
	if s.blob.Mission == nil {
		return nil, nil
	}
	m := *s.blob.Mission
	return &m, nil
}

func (s *JSONStore) SaveMission(m models.Mission) error {
	s.blob.Mission = &m
	return s.save()
}

func (s *JSONStore) ClearMission() error {
	s.blob.Mission = nil
	return s.save()
}

// Squads

func (s *JSONStore) AddSquad(sq models.Squad) error {
	s.blob.Squads[sq.ID] = sq
	return s.save()
}

func (s *JSONStore) GetSquad(id string) (models.Squad, error) {
	sq, ok := s.blob.Squads[id]
	if !ok {
		return models.Squad{}, ErrNotFound
	}
	return sq, nil
}

func (s *JSONStore) GetAllSquads() ([]models.Squad, error) {
	var squads []models.Squad
	for _, sq := range s.blob.Squads {
		squads = append(squads, sq)
	}
	sortSquadsByCreation(squads)
	return squads, nil
}

func (s *JSONStore) UpdateSquad(sq models.Squad) error {
	s.blob.Squads[sq.ID] = sq
	return s.save()
}

// Feed, bounded to the newest entries

func (s *JSONStore) AddRipple(r models.RippleEvent) error {
	s.blob.Feed = append([]models.RippleEvent{r}, s.blob.Feed...)
	if len(s.blob.Feed) > constants.FeedMaxEntries {
		s.blob.Feed = s.blob.Feed[:constants.FeedMaxEntries]
	}
	return s.save()
}

func (s *JSONStore) GetFeed() ([]models.RippleEvent, error) {
	return append([]models.RippleEvent(nil), s.blob.Feed...), nil
}

// Chat

func (s *JSONStore) AddChatMessage(m models.ChatMessage) error {
	s.blob.Chat = append(s.blob.Chat, m)
	return s.save()
}

func (s *JSONStore) GetChatMessages(squadID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	for _, m := range s.blob.Chat {
		if m.SquadID == squadID {
			messages = append(messages, m)
		}
	}
	return messages, nil
}

// Teams

func (s *JSONStore) GetTeams() ([]models.Team, error) {
	return append([]models.Team(nil), s.blob.Teams...), nil
}

func (s *JSONStore) SaveTeam(t models.Team) error {
	for i := range s.blob.Teams {
		if s.blob.Teams[i].ID == t.ID {
			s.blob.Teams[i] = t
			return s.save()
		}
	}
	s.blob.Teams = append(s.blob.Teams, t)
	return s.save()
}

func (s *JSONStore) GetTeamChallenges() ([]models.TeamChallenge, error) {
	return append([]models.TeamChallenge(nil), s.blob.TeamChallenges...), nil
}

func (s *JSONStore) SaveTeamChallenge(c models.TeamChallenge) error {
	for i := range s.blob.TeamChallenges {
		if s.blob.TeamChallenges[i].ID == c.ID {
			s.blob.TeamChallenges[i] = c
			return s.save()
		}
	}
	s.blob.TeamChallenges = append(s.blob.TeamChallenges, c)
	return s.save()
}

// Priority pointer

func (s *JSONStore) GetPriorityHabitID() (string, error) {
	return s.blob.PriorityHabit, nil
}

func (s *JSONStore) SetPriorityHabitID(id string) error {
	s.blob.PriorityHabit = id
	return s.save()
}

func (s *JSONStore) ClearPriorityHabit() error {
	s.blob.PriorityHabit = ""
	return s.save()
}
