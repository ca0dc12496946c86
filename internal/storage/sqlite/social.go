package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

// Activity feed, pruned to the most recent entries on every insert

func (s *Store) AddRipple(r models.RippleEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO feed (id, actor, message, created_at) VALUES (?, ?, ?, ?)",
		r.ID, r.Actor, r.Message, r.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		DELETE FROM feed WHERE id NOT IN (
			SELECT id FROM feed ORDER BY created_at DESC, id LIMIT ?
		)`, constants.FeedMaxEntries); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetFeed() ([]models.RippleEvent, error) {
	rows, err := s.db.Query("SELECT id, actor, message, created_at FROM feed ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feed []models.RippleEvent
	for rows.Next() {
		var r models.RippleEvent
		var actor sql.NullString
		var createdAt string
		if err := rows.Scan(&r.ID, &actor, &r.Message, &createdAt); err != nil {
			return nil, err
		}
		r.Actor = actor.String
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		feed = append(feed, r)
	}
	return feed, rows.Err()
}

// Squad chat

func (s *Store) AddChatMessage(m models.ChatMessage) error {
	system := 0
	if m.System {
		system = 1
	}
	_, err := s.db.Exec(
		"INSERT INTO chat (id, squad_id, sender, text, system, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		m.ID, m.SquadID, m.Sender, m.Text, system, m.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetChatMessages(squadID string) ([]models.ChatMessage, error) {
	rows, err := s.db.Query(
		"SELECT id, squad_id, sender, text, system, created_at FROM chat WHERE squad_id = ? ORDER BY created_at",
		squadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		var system int
		var createdAt string
		if err := rows.Scan(&m.ID, &m.SquadID, &m.Sender, &m.Text, &system, &createdAt); err != nil {
			return nil, err
		}
		m.System = system != 0
		m.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Teams and team challenges, locally seeded

func (s *Store) GetTeams() ([]models.Team, error) {
	rows, err := s.db.Query("SELECT id, name, members, score FROM teams ORDER BY score DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		var members sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &members, &t.Score); err != nil {
			return nil, err
		}
		if members.Valid && members.String != "" {
			if err := json.Unmarshal([]byte(members.String), &t.Members); err != nil {
				return nil, fmt.Errorf("failed to parse team members: %w", err)
			}
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *Store) SaveTeam(t models.Team) error {
	members, err := json.Marshal(t.Members)
	if err != nil {
		return fmt.Errorf("failed to encode team members: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO teams (id, name, members, score) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, members = excluded.members, score = excluded.score`,
		t.ID, t.Name, string(members), t.Score)
	return err
}

func (s *Store) GetTeamChallenges() ([]models.TeamChallenge, error) {
	rows, err := s.db.Query("SELECT id, team_id, title, target, progress, ends_at FROM team_challenges ORDER BY ends_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []models.TeamChallenge
	for rows.Next() {
		var c models.TeamChallenge
		var endsAt string
		if err := rows.Scan(&c.ID, &c.TeamID, &c.Title, &c.Target, &c.Progress, &endsAt); err != nil {
			return nil, err
		}
		c.EndsAt, err = time.Parse(time.RFC3339, endsAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ends_at: %w", err)
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func (s *Store) SaveTeamChallenge(c models.TeamChallenge) error {
	_, err := s.db.Exec(`
		INSERT INTO team_challenges (id, team_id, title, target, progress, ends_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET progress = excluded.progress`,
		c.ID, c.TeamID, c.Title, c.Target, c.Progress, c.EndsAt.Format(time.RFC3339))
	return err
}
