package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/ember/internal/models"
)

const habitColumns = `id, title, description, identity_tag, cue, streak, longest_streak,
	last_completed, completions, momentum_shields, comeback, micro_version, created_at, deleted_at`

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	completions, err := json.Marshal(habit.Completions)
	if err != nil {
		return fmt.Errorf("failed to encode completions: %w", err)
	}
	var comeback interface{}
	if habit.Comeback != nil {
		data, err := json.Marshal(habit.Comeback)
		if err != nil {
			return fmt.Errorf("failed to encode comeback challenge: %w", err)
		}
		comeback = string(data)
	}
	var lastCompleted interface{}
	if habit.LastCompleted != nil {
		lastCompleted = habit.LastCompleted.Format(time.RFC3339)
	}
	var deletedAt interface{}
	if habit.DeletedAt != nil {
		deletedAt = habit.DeletedAt.Format(time.RFC3339)
	}

	_, err = s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			identity_tag = excluded.identity_tag,
			cue = excluded.cue,
			streak = excluded.streak,
			longest_streak = excluded.longest_streak,
			last_completed = excluded.last_completed,
			completions = excluded.completions,
			momentum_shields = excluded.momentum_shields,
			comeback = excluded.comeback,
			micro_version = excluded.micro_version,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.Title, habit.Description, habit.IdentityTag, string(habit.Cue),
		habit.Streak, habit.LongestStreak, lastCompleted, string(completions),
		habit.MomentumShields, comeback, habit.MicroVersion,
		habit.CreatedAt.Format(time.RFC3339), deletedAt)
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ? AND deleted_at IS NULL`, id)
	return scanHabit(row)
}

func (s *Store) GetHabitByTitle(title string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE title = ? AND deleted_at IS NULL`, title)
	return scanHabit(row)
}

func (s *Store) GetAllHabits(includeDeleted bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits`
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) DeleteHabit(id string) error {
	res, err := s.db.Exec("UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var description, identityTag, cue, lastCompleted, completions, comeback, microVersion, deletedAt sql.NullString
	var createdAt string

	err := row.Scan(&h.ID, &h.Title, &description, &identityTag, &cue, &h.Streak, &h.LongestStreak,
		&lastCompleted, &completions, &h.MomentumShields, &comeback, &microVersion, &createdAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Description = description.String
	h.IdentityTag = identityTag.String
	h.Cue = models.Cue(cue.String)
	h.MicroVersion = microVersion.String

	if lastCompleted.Valid {
		t, err := time.Parse(time.RFC3339, lastCompleted.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse last_completed: %w", err)
		}
		h.LastCompleted = &t
	}
	if completions.Valid && completions.String != "" {
		if err := json.Unmarshal([]byte(completions.String), &h.Completions); err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse completions: %w", err)
		}
	}
	if comeback.Valid && comeback.String != "" {
		var cb models.ComebackChallenge
		if err := json.Unmarshal([]byte(comeback.String), &cb); err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse comeback challenge: %w", err)
		}
		h.Comeback = &cb
	}
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		h.DeletedAt = &t
	}
	return h, nil
}
