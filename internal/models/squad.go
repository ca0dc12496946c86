package models

import "time"

// JoinRequest is a pending application to join a squad. Approvals accumulate
// until quorum; a single denial drops the request immediately.
type JoinRequest struct {
	ID          string    `json:"id"`
	UserName    string    `json:"user_name"`
	Approvals   []string  `json:"approvals,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// KickVote tracks an in-progress vote to remove a member
type KickVote struct {
	TargetMember string    `json:"target_member"`
	Voters       []string  `json:"voters,omitempty"`
	StartedAt    time.Time `json:"started_at"`
}

// DailyQuest is one of the squad's date-stamped quest items. First claim
// wins; a completed quest cannot be re-completed.
type DailyQuest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Points      int    `json:"points"`
	IsCompleted bool   `json:"is_completed"`
	CompletedBy string `json:"completed_by,omitempty"`
}

// Squad is a small group (max 5) whose member completions accumulate into a
// shared momentum score. SharedMomentum only ever increases.
type Squad struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	SharedMomentum  int           `json:"shared_momentum"`
	Members         []string      `json:"members,omitempty"`
	PendingRequests []JoinRequest `json:"pending_requests,omitempty"`
	ActiveKickVotes []KickVote    `json:"active_kick_votes,omitempty"`
	DailyQuests     []DailyQuest  `json:"daily_quests,omitempty"`
	// QuestsDate is the YYYY-MM-DD day the current quest set was generated for
	QuestsDate string    `json:"quests_date,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Clone returns a deep copy of the squad
func (s Squad) Clone() Squad {
	c := s
	c.Members = append([]string(nil), s.Members...)
	if s.PendingRequests != nil {
		c.PendingRequests = make([]JoinRequest, len(s.PendingRequests))
		for i, r := range s.PendingRequests {
			r.Approvals = append([]string(nil), r.Approvals...)
			c.PendingRequests[i] = r
		}
	}
	if s.ActiveKickVotes != nil {
		c.ActiveKickVotes = make([]KickVote, len(s.ActiveKickVotes))
		for i, v := range s.ActiveKickVotes {
			v.Voters = append([]string(nil), v.Voters...)
			c.ActiveKickVotes[i] = v
		}
	}
	c.DailyQuests = append([]DailyQuest(nil), s.DailyQuests...)
	return c
}

// HasMember reports whether name is a current squad member
func (s Squad) HasMember(name string) bool {
	for _, m := range s.Members {
		if m == name {
			return true
		}
	}
	return false
}
