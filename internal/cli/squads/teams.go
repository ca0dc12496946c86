package squads

import (
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
)

type TeamsCmd struct{}

// Run prints the team leaderboard and any running team challenges.
func (c *TeamsCmd) Run(ctx *cli.Context) error {
	teams, err := ctx.Store.GetTeams()
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		fmt.Println("No teams yet.")
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Team leaderboard"))
	for i, t := range teams {
		fmt.Printf("  %d. %s  %s  %s\n", i+1, t.Name,
			cli.StreakStyle.Render(fmt.Sprintf("%d pts", t.Score)),
			cli.DimStyle.Render(fmt.Sprintf("%d members", len(t.Members))))
	}

	challenges, err := ctx.Store.GetTeamChallenges()
	if err != nil {
		return err
	}
	if len(challenges) == 0 {
		return nil
	}

	loc := ctx.Location()
	now := timeNow()
	fmt.Println("\n" + cli.TitleStyle.Render("Team challenges"))
	for _, ch := range challenges {
		daysLeft := engine.DaysBetween(now, ch.EndsAt, loc)
		status := fmt.Sprintf("%d/%d", ch.Progress, ch.Target)
		if daysLeft < 0 {
			status += cli.DimStyle.Render("  ended")
		} else {
			status += cli.DimStyle.Render(fmt.Sprintf("  %d day(s) left", daysLeft))
		}
		fmt.Printf("  %s  %s\n", ch.Title, status)
	}
	return nil
}
