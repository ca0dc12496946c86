package models

import "time"

// RippleEvent is one entry in the bounded activity feed
type RippleEvent struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is a squad chat entry; System marks engine-generated notices
// (join approved, member removed, quest claimed)
type ChatMessage struct {
	ID        string    `json:"id"`
	SquadID   string    `json:"squad_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	System    bool      `json:"system,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Team is a larger social grouping, locally seeded mock data in this design
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
	Score   int      `json:"score"`
}

// TeamChallenge is a time-boxed team-wide goal
type TeamChallenge struct {
	ID       string    `json:"id"`
	TeamID   string    `json:"team_id"`
	Title    string    `json:"title"`
	Target   int       `json:"target"`
	Progress int       `json:"progress"`
	EndsAt   time.Time `json:"ends_at"`
}
