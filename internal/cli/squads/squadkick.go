package squads

import (
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
)

type SquadKickCmd struct {
	Member string `arg:"" help:"Member name to vote against."`
}

// Run casts a kick ballot. The first ballot against a member opens the
// vote; reaching quorum removes them immediately.
func (c *SquadKickCmd) Run(ctx *cli.Context) error {
	profile, squad, err := mySquad(ctx)
	if err != nil {
		return err
	}
	if c.Member == profile.Name {
		return fmt.Errorf("you cannot vote to kick yourself")
	}

	if !squad.HasMember(c.Member) {
		return fmt.Errorf("%s is not a member of %q", c.Member, squad.Name)
	}

	quorum := engine.KickQuorum(len(squad.Members))
	updated, removed := engine.VoteKick(squad, c.Member, profile.Name)
	if err := ctx.Store.UpdateSquad(updated); err != nil {
		return err
	}

	if removed {
		ctx.SystemChat(squad.ID, fmt.Sprintf("%s was removed from the squad", c.Member))
		fmt.Printf("%s was removed from %q.\n", c.Member, squad.Name)
		return nil
	}

	votes := 0
	for _, v := range updated.ActiveKickVotes {
		if v.TargetMember == c.Member {
			votes = len(v.Voters)
			break
		}
	}
	fmt.Printf("Vote recorded: %d of %d needed to remove %s.\n", votes, quorum, c.Member)
	return nil
}
