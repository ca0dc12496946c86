package squads

import (
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
	"github.com/julianstephens/ember/internal/models"
)

type SquadApproveCmd struct {
	Request string `arg:"" help:"Join request ID or requester name."`
}

func (c *SquadApproveCmd) Run(ctx *cli.Context) error {
	profile, squad, err := mySquad(ctx)
	if err != nil {
		return err
	}

	requestID, userName, err := findRequest(squad, c.Request)
	if err != nil {
		return err
	}

	updated, outcome := engine.ApproveJoin(squad, requestID, profile.Name)
	if err := ctx.Store.UpdateSquad(updated); err != nil {
		return err
	}

	switch outcome {
	case engine.JoinApproved:
		ctx.SystemChat(squad.ID, fmt.Sprintf("%s joined the squad", userName))
		ctx.Ripple(userName, fmt.Sprintf("joined squad %q", squad.Name))
		fmt.Printf("%s joined %q.\n", userName, squad.Name)
	case engine.JoinDroppedFull:
		ctx.SystemChat(squad.ID, fmt.Sprintf("%s's request was dropped: squad is full", userName))
		fmt.Printf("Quorum reached, but %q is full. The request was dropped.\n", squad.Name)
	case engine.JoinPending:
		fmt.Printf("Approval recorded. The request still needs more approvals.\n")
	}
	return nil
}

type SquadDenyCmd struct {
	Request string `arg:"" help:"Join request ID or requester name."`
}

// Run denies a pending request. A single denial removes it; no quorum.
func (c *SquadDenyCmd) Run(ctx *cli.Context) error {
	_, squad, err := mySquad(ctx)
	if err != nil {
		return err
	}

	requestID, userName, err := findRequest(squad, c.Request)
	if err != nil {
		return err
	}

	updated, removed := engine.DenyJoin(squad, requestID)
	if !removed {
		return fmt.Errorf("no pending request matches %q", c.Request)
	}
	if err := ctx.Store.UpdateSquad(updated); err != nil {
		return err
	}
	fmt.Printf("Denied %s's request to join %q.\n", userName, squad.Name)
	return nil
}

func findRequest(squad models.Squad, ref string) (id, userName string, err error) {
	for _, req := range squad.PendingRequests {
		if req.ID == ref || req.UserName == ref {
			return req.ID, req.UserName, nil
		}
	}
	return "", "", fmt.Errorf("no pending request matches %q", ref)
}
