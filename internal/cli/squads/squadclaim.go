package squads

import (
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
)

type SquadClaimCmd struct {
	Quest string `arg:"" help:"Quest ID or title."`
}

// Run claims a daily quest for the user. First claim wins; a quest someone
// already completed cannot be claimed again.
func (c *SquadClaimCmd) Run(ctx *cli.Context) error {
	profile, squad, err := mySquad(ctx)
	if err != nil {
		return err
	}

	questID, title, points := "", "", 0
	for _, q := range squad.DailyQuests {
		if q.ID == c.Quest || q.Title == c.Quest {
			questID, title, points = q.ID, q.Title, q.Points
			break
		}
	}
	if questID == "" {
		return fmt.Errorf("no quest matches %q", c.Quest)
	}

	updated, claimed := engine.ClaimQuest(squad, questID, profile.Name)
	if !claimed {
		fmt.Printf("%q was already claimed.\n", title)
		return nil
	}
	if err := ctx.Store.UpdateSquad(updated); err != nil {
		return err
	}

	ctx.SystemChat(squad.ID, fmt.Sprintf("%s completed the quest %q (+%d)", profile.Name, title, points))
	ctx.Ripple(profile.Name, fmt.Sprintf("completed squad quest %q", title))
	fmt.Printf("Quest %q claimed! Squad momentum +%d (now %d).\n",
		title, points, updated.SharedMomentum)
	return nil
}
