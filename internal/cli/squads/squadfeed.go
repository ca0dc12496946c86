package squads

import (
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
)

type SquadFeedCmd struct{}

// Run prints the recent activity feed, newest first.
func (c *SquadFeedCmd) Run(ctx *cli.Context) error {
	feed, err := ctx.Store.GetFeed()
	if err != nil {
		return err
	}
	if len(feed) == 0 {
		fmt.Println("No activity yet.")
		return nil
	}

	for _, r := range feed {
		actor := r.Actor
		if actor == "" {
			actor = "someone"
		}
		fmt.Printf("%s %s %s\n",
			cli.DimStyle.Render(r.CreatedAt.Format("Jan 02 15:04")),
			cli.TitleStyle.Render(actor),
			r.Message)
	}
	return nil
}
