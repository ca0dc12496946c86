package models

import "time"

// UserProfile is the single local user's record
type UserProfile struct {
	Name       string         `json:"name"`
	Locale     string         `json:"locale,omitempty"`
	Identities []UserIdentity `json:"identities,omitempty"`
	SquadID    string         `json:"squad_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// IdentityByName returns the identity matching name, or nil when the tag has
// no matching identity (a no-op case for XP awards, never an error)
func (p *UserProfile) IdentityByName(name string) *UserIdentity {
	for i := range p.Identities {
		if p.Identities[i].Name == name {
			return &p.Identities[i]
		}
	}
	return nil
}
