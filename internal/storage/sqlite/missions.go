package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/ember/internal/models"
)

// At most one mission is active; saving replaces any previous row.

func (s *Store) GetActiveMission() (*models.Mission, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, title, description, target_completions, current_completions,
			is_completed, reward_type, reward_amount, created_at
		FROM missions ORDER BY created_at DESC LIMIT 1`)

	var m models.Mission
	var description sql.NullString
	var isCompleted int
	var createdAt string
	err := row.Scan(&m.ID, &m.HabitID, &m.Title, &description, &m.TargetCompletions,
		&m.CurrentCompletions, &isCompleted, &m.Reward.Type, &m.Reward.Amount, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	m.IsCompleted = isCompleted != 0
	m.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &m, nil
}

func (s *Store) SaveMission(m models.Mission) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM missions WHERE id != ?", m.ID); err != nil {
		return err
	}
	isCompleted := 0
	if m.IsCompleted {
		isCompleted = 1
	}
	if _, err := tx.Exec(`
		INSERT INTO missions (id, habit_id, title, description, target_completions,
			current_completions, is_completed, reward_type, reward_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_completions = excluded.current_completions,
			is_completed = excluded.is_completed`,
		m.ID, m.HabitID, m.Title, m.Description, m.TargetCompletions,
		m.CurrentCompletions, isCompleted, string(m.Reward.Type), m.Reward.Amount,
		m.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) ClearMission() error {
	_, err := s.db.Exec("DELETE FROM missions")
	return err
}
