package squads

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/engine"
	"github.com/julianstephens/ember/internal/models"
)

type SquadJoinCmd struct {
	Squad string `arg:"" help:"Squad ID or name."`
	As    string `help:"Request on behalf of another member name (for shared devices)."`
}

// Run files a join request. Joining always goes through member approval,
// even when the squad has room.
func (c *SquadJoinCmd) Run(ctx *cli.Context) error {
	squad, err := resolveSquad(ctx, c.Squad)
	if err != nil {
		return err
	}

	userName := c.As
	if userName == "" {
		profile, err := ctx.Store.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		if profile.SquadID != "" {
			return fmt.Errorf("you are already in a squad")
		}
		userName = profile.Name
	}

	if squad.HasMember(userName) {
		return fmt.Errorf("%s is already a member of %q", userName, squad.Name)
	}
	for _, req := range squad.PendingRequests {
		if req.UserName == userName {
			return fmt.Errorf("%s already has a pending request for %q", userName, squad.Name)
		}
	}
	if len(squad.Members) >= constants.SquadMaxMembers {
		return fmt.Errorf("squad %q is full (%d members)", squad.Name, constants.SquadMaxMembers)
	}

	squad.PendingRequests = append(squad.PendingRequests, models.JoinRequest{
		ID:          uuid.New().String(),
		UserName:    userName,
		RequestedAt: timeNow(),
	})
	if err := ctx.Store.UpdateSquad(squad); err != nil {
		return err
	}

	ctx.SystemChat(squad.ID, fmt.Sprintf("%s asked to join", userName))
	fmt.Printf("Join request filed for %q. %d approval(s) needed.\n",
		squad.Name, engine.JoinQuorum(len(squad.Members)))
	return nil
}
