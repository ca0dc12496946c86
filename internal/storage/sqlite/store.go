package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			Timezone:          "Local",
			DailyContentQuota: constants.DefaultDailyContentQuota,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'ember init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema statements are idempotent; running them on load picks up
	// tables added since the database was first initialized
	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			name TEXT NOT NULL,
			locale TEXT,
			squad_id TEXT,
			identities TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			identity_tag TEXT,
			cue TEXT,
			streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			last_completed TEXT,
			completions TEXT,
			momentum_shields INTEGER NOT NULL DEFAULT 0,
			comeback TEXT,
			micro_version TEXT,
			created_at TEXT NOT NULL,
			deleted_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS missions (
			id TEXT PRIMARY KEY,
			habit_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			target_completions INTEGER NOT NULL,
			current_completions INTEGER NOT NULL DEFAULT 0,
			is_completed INTEGER NOT NULL DEFAULT 0,
			reward_type TEXT NOT NULL,
			reward_amount INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS squads (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			shared_momentum INTEGER NOT NULL DEFAULT 0,
			members TEXT,
			pending_requests TEXT,
			kick_votes TEXT,
			daily_quests TEXT,
			quests_date TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS feed (
			id TEXT PRIMARY KEY,
			actor TEXT,
			message TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chat (
			id TEXT PRIMARY KEY,
			squad_id TEXT NOT NULL,
			sender TEXT NOT NULL,
			text TEXT NOT NULL,
			system INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS teams (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			members TEXT,
			score INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS team_challenges (
			id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL,
			title TEXT NOT NULL,
			target INTEGER NOT NULL,
			progress INTEGER NOT NULL DEFAULT 0,
			ends_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Settings are stored as key/value rows

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "timezone":
			settings.Timezone = value
		case "daily_content_quota":
			if _, err := fmt.Sscanf(value, "%d", &settings.DailyContentQuota); err != nil {
				return models.Settings{}, fmt.Errorf("parsing daily_content_quota: %w", err)
			}
		case "content_calls_used":
			if _, err := fmt.Sscanf(value, "%d", &settings.ContentCallsUsed); err != nil {
				return models.Settings{}, fmt.Errorf("parsing content_calls_used: %w", err)
			}
		case "content_quota_date":
			settings.ContentQuotaDate = value
		case "last_rollover_date":
			settings.LastRolloverDate = value
		}
		count++
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	pairs := map[string]string{
		"timezone":            settings.Timezone,
		"daily_content_quota": strconv.Itoa(settings.DailyContentQuota),
		"content_calls_used":  strconv.Itoa(settings.ContentCallsUsed),
		"content_quota_date":  settings.ContentQuotaDate,
		"last_rollover_date":  settings.LastRolloverDate,
	}
	for key, value := range pairs {
		if _, err := s.db.Exec(
			"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value); err != nil {
			return fmt.Errorf("saving setting %s: %w", key, err)
		}
	}
	return nil
}

// Priority habit pointer lives in the settings table

func (s *Store) GetPriorityHabitID() (string, error) {
	var id string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = 'priority_habit_id'").Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) SetPriorityHabitID(id string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES ('priority_habit_id', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		id)
	return err
}

func (s *Store) ClearPriorityHabit() error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = 'priority_habit_id'")
	return err
}

// Profile is a single row

func (s *Store) GetProfile() (models.UserProfile, error) {
	row := s.db.QueryRow("SELECT name, locale, squad_id, identities, created_at FROM profile WHERE id = 1")

	var p models.UserProfile
	var locale, squadID, identities sql.NullString
	var createdAt string
	if err := row.Scan(&p.Name, &locale, &squadID, &identities, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return models.UserProfile{}, fmt.Errorf("profile not found")
		}
		return models.UserProfile{}, err
	}
	p.Locale = locale.String
	p.SquadID = squadID.String
	if identities.Valid && identities.String != "" {
		if err := json.Unmarshal([]byte(identities.String), &p.Identities); err != nil {
			return models.UserProfile{}, fmt.Errorf("failed to parse identities: %w", err)
		}
	}
	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return p, nil
}

func (s *Store) SaveProfile(p models.UserProfile) error {
	identities, err := json.Marshal(p.Identities)
	if err != nil {
		return fmt.Errorf("failed to encode identities: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO profile (id, name, locale, squad_id, identities, created_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			locale = excluded.locale,
			squad_id = excluded.squad_id,
			identities = excluded.identities`,
		p.Name, p.Locale, p.SquadID, string(identities), p.CreatedAt.Format(time.RFC3339))
	return err
}
