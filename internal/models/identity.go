package models

// UserIdentity is a chosen archetype ("Writer", "Athlete") that accumulates
// XP from habits tagged to it. Invariant after any award: 0 <= XP < Level*100.
type UserIdentity struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	XP    int    `json:"xp"`
}

// NewIdentity returns a level-1 identity with no XP
func NewIdentity(name string) UserIdentity {
	return UserIdentity{Name: name, Level: 1}
}
