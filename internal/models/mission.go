package models

import "time"

type RewardType string

const (
	RewardShield RewardType = "shield"
)

// MissionReward is what completing a mission grants to its target habit
type MissionReward struct {
	Type   RewardType `json:"type"`
	Amount int        `json:"amount"`
}

// Mission is a 7-day personal goal tied to a single habit. Only one mission
// is active at a time; an uncompleted mission older than 7 days is discarded
// on load.
type Mission struct {
	ID                 string        `json:"id"`
	HabitID            string        `json:"habit_id"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty"`
	TargetCompletions  int           `json:"target_completions"`
	CurrentCompletions int           `json:"current_completions"`
	IsCompleted        bool          `json:"is_completed"`
	Reward             MissionReward `json:"reward"`
	CreatedAt          time.Time     `json:"created_at"`
}
