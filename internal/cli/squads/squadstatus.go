package squads

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
)

type SquadStatusCmd struct{}

func (c *SquadStatusCmd) Run(ctx *cli.Context) error {
	_, squad, err := mySquad(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s  momentum %s\n",
		cli.TitleStyle.Render(squad.Name),
		cli.StreakStyle.Render(fmt.Sprintf("%d", squad.SharedMomentum)))
	fmt.Printf("Members (%d): %s\n", len(squad.Members), strings.Join(squad.Members, ", "))

	if len(squad.PendingRequests) > 0 {
		fmt.Println("\nPending join requests:")
		quorum := engine.JoinQuorum(len(squad.Members))
		for _, req := range squad.PendingRequests {
			fmt.Printf("  %s  %s\n", req.UserName,
				cli.DimStyle.Render(fmt.Sprintf("%d/%d approvals (ID %s)", len(req.Approvals), quorum, req.ID)))
		}
	}

	if len(squad.ActiveKickVotes) > 0 {
		fmt.Println("\nActive kick votes:")
		quorum := engine.KickQuorum(len(squad.Members))
		for _, v := range squad.ActiveKickVotes {
			fmt.Printf("  %s  %s\n", v.TargetMember,
				cli.DangerStyle.Render(fmt.Sprintf("%d/%d votes", len(v.Voters), quorum)))
		}
	}

	if len(squad.DailyQuests) > 0 {
		fmt.Println("\nToday's quests:")
		for _, q := range squad.DailyQuests {
			mark := "○"
			suffix := ""
			if q.IsCompleted {
				mark = "●"
				suffix = cli.DimStyle.Render(" claimed by " + q.CompletedBy)
			}
			fmt.Printf("  %s %s (+%d)%s\n", mark, q.Title, q.Points, suffix)
		}
	}
	return nil
}
