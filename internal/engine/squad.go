package engine

import (
	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

// JoinOutcome classifies the result of recording a join approval
type JoinOutcome int

const (
	// JoinPending means the request is still short of quorum
	JoinPending JoinOutcome = iota
	// JoinApproved means the requester was added to the squad
	JoinApproved
	// JoinDroppedFull means quorum was reached but the squad was at the
	// member cap; the request is dropped, not retried
	JoinDroppedFull
)

// JoinQuorum is the number of approvals a join request needs:
// min(2, max(1, memberCount)). A single-member squad approves alone.
func JoinQuorum(memberCount int) int {
	q := memberCount
	if q < 1 {
		q = 1
	}
	if q > constants.JoinApprovalQuorumCap {
		q = constants.JoinApprovalQuorumCap
	}
	return q
}

// KickQuorum is the number of votes needed to remove a member:
// ceil(memberCount * 0.5). For even member counts this is exactly half,
// not strictly more.
func KickQuorum(memberCount int) int {
	return (memberCount + 1) / 2
}

// ApproveJoin records one approval ballot on a pending request. When quorum
// is reached the request is removed and the requester joins, unless the
// squad is already at the member cap, in which case the request is dropped.
// Duplicate ballots from the same approver are ignored.
func ApproveJoin(squad models.Squad, requestID, approver string) (models.Squad, JoinOutcome) {
	sq := squad.Clone()
	for i := range sq.PendingRequests {
		req := &sq.PendingRequests[i]
		if req.ID != requestID {
			continue
		}
		if !containsString(req.Approvals, approver) {
			req.Approvals = append(req.Approvals, approver)
		}
		if len(req.Approvals) < JoinQuorum(len(sq.Members)) {
			return sq, JoinPending
		}
		userName := req.UserName
		sq.PendingRequests = append(sq.PendingRequests[:i], sq.PendingRequests[i+1:]...)
		if len(sq.Members) >= constants.SquadMaxMembers {
			return sq, JoinDroppedFull
		}
		sq.Members = append(sq.Members, userName)
		return sq, JoinApproved
	}
	return sq, JoinPending
}

// DenyJoin removes a pending request outright. Denial is unconditional and
// immediate; no quorum is needed. Returns whether a request was removed.
func DenyJoin(squad models.Squad, requestID string) (models.Squad, bool) {
	sq := squad.Clone()
	for i := range sq.PendingRequests {
		if sq.PendingRequests[i].ID == requestID {
			sq.PendingRequests = append(sq.PendingRequests[:i], sq.PendingRequests[i+1:]...)
			return sq, true
		}
	}
	return sq, false
}

// VoteKick records a kick ballot against a member, starting a vote if none
// is active for that target. When the quorum (half the members, rounded up)
// is reached the target is removed and the vote cleared. Duplicate ballots
// and votes against non-members are ignored.
func VoteKick(squad models.Squad, target, voter string) (models.Squad, bool) {
	sq := squad.Clone()
	if !sq.HasMember(target) {
		return sq, false
	}

	idx := -1
	for i := range sq.ActiveKickVotes {
		if sq.ActiveKickVotes[i].TargetMember == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		sq.ActiveKickVotes = append(sq.ActiveKickVotes, models.KickVote{TargetMember: target})
		idx = len(sq.ActiveKickVotes) - 1
	}
	vote := &sq.ActiveKickVotes[idx]
	if !containsString(vote.Voters, voter) {
		vote.Voters = append(vote.Voters, voter)
	}
	if len(vote.Voters) < KickQuorum(len(sq.Members)) {
		return sq, false
	}

	sq.ActiveKickVotes = append(sq.ActiveKickVotes[:idx], sq.ActiveKickVotes[idx+1:]...)
	for i, m := range sq.Members {
		if m == target {
			sq.Members = append(sq.Members[:i], sq.Members[i+1:]...)
			break
		}
	}
	return sq, true
}

// ClaimQuest marks a daily quest complete for the claimant and adds its
// points to the shared momentum. First claim wins: a completed quest cannot
// be re-completed, and the duplicate claim changes nothing.
func ClaimQuest(squad models.Squad, questID, claimant string) (models.Squad, bool) {
	sq := squad.Clone()
	for i := range sq.DailyQuests {
		q := &sq.DailyQuests[i]
		if q.ID != questID {
			continue
		}
		if q.IsCompleted {
			return sq, false
		}
		q.IsCompleted = true
		q.CompletedBy = claimant
		if q.Points > 0 {
			sq.SharedMomentum += q.Points
		}
		return sq, true
	}
	return sq, false
}

// RegenerateQuests replaces the squad's quest set when the stored set is
// stamped with a different calendar day. Runs at most once per day.
func RegenerateQuests(squad models.Squad, today string, quests []models.DailyQuest) models.Squad {
	if squad.QuestsDate == today {
		return squad
	}
	sq := squad.Clone()
	sq.DailyQuests = append([]models.DailyQuest(nil), quests...)
	sq.QuestsDate = today
	return sq
}

// AddMomentum adds a completion's contribution to the shared score.
// SharedMomentum is monotonically non-decreasing: negative amounts are
// ignored.
func AddMomentum(squad models.Squad, amount int) models.Squad {
	sq := squad.Clone()
	if amount > 0 {
		sq.SharedMomentum += amount
	}
	return sq
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
