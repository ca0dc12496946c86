package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/ember/internal/models"
)

const squadColumns = `id, name, shared_momentum, members, pending_requests, kick_votes,
	daily_quests, quests_date, created_at`

func (s *Store) AddSquad(squad models.Squad) error {
	return s.UpdateSquad(squad)
}

func (s *Store) UpdateSquad(squad models.Squad) error {
	members, err := json.Marshal(squad.Members)
	if err != nil {
		return fmt.Errorf("failed to encode members: %w", err)
	}
	requests, err := json.Marshal(squad.PendingRequests)
	if err != nil {
		return fmt.Errorf("failed to encode pending requests: %w", err)
	}
	votes, err := json.Marshal(squad.ActiveKickVotes)
	if err != nil {
		return fmt.Errorf("failed to encode kick votes: %w", err)
	}
	quests, err := json.Marshal(squad.DailyQuests)
	if err != nil {
		return fmt.Errorf("failed to encode daily quests: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO squads (`+squadColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			shared_momentum = excluded.shared_momentum,
			members = excluded.members,
			pending_requests = excluded.pending_requests,
			kick_votes = excluded.kick_votes,
			daily_quests = excluded.daily_quests,
			quests_date = excluded.quests_date`,
		squad.ID, squad.Name, squad.SharedMomentum, string(members), string(requests),
		string(votes), string(quests), squad.QuestsDate, squad.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetSquad(id string) (models.Squad, error) {
	row := s.db.QueryRow(`SELECT `+squadColumns+` FROM squads WHERE id = ?`, id)
	return scanSquad(row)
}

func (s *Store) GetAllSquads() ([]models.Squad, error) {
	rows, err := s.db.Query(`SELECT ` + squadColumns + ` FROM squads ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var squads []models.Squad
	for rows.Next() {
		sq, err := scanSquad(rows)
		if err != nil {
			return nil, err
		}
		squads = append(squads, sq)
	}
	return squads, rows.Err()
}

func scanSquad(row rowScanner) (models.Squad, error) {
	var sq models.Squad
	var members, requests, votes, quests, questsDate sql.NullString
	var createdAt string

	err := row.Scan(&sq.ID, &sq.Name, &sq.SharedMomentum, &members, &requests, &votes,
		&quests, &questsDate, &createdAt)
	if err != nil {
		return models.Squad{}, err
	}

	sq.QuestsDate = questsDate.String
	for _, field := range []struct {
		raw  sql.NullString
		dest interface{}
		name string
	}{
		{members, &sq.Members, "members"},
		{requests, &sq.PendingRequests, "pending_requests"},
		{votes, &sq.ActiveKickVotes, "kick_votes"},
		{quests, &sq.DailyQuests, "daily_quests"},
	} {
		if field.raw.Valid && field.raw.String != "" {
			if err := json.Unmarshal([]byte(field.raw.String), field.dest); err != nil {
				return models.Squad{}, fmt.Errorf("failed to parse %s: %w", field.name, err)
			}
		}
	}
	sq.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Squad{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return sq, nil
}
