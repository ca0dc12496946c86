package identities

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/constants"
)

type IdentityListCmd struct{}

// Run lists every identity on the profile with its level and progress
// toward the next one.
func (c *IdentityListCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if len(profile.Identities) == 0 {
		fmt.Println("No identities yet. Tag a habit with one via 'ember habit add --identity'.")
		return nil
	}

	for _, id := range profile.Identities {
		needed := id.Level * constants.XPLevelStep
		fmt.Printf("%s  level %d  %s\n",
			cli.TitleStyle.Render(id.Name),
			id.Level,
			cli.DimStyle.Render(fmt.Sprintf("%d/%d XP", id.XP, needed)))
		fmt.Println("  " + progressBar(id.XP, needed, 20))
	}
	return nil
}

func progressBar(current, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := current * width / total
	if filled > width {
		filled = width
	}
	return cli.StreakStyle.Render(strings.Repeat("█", filled)) +
		cli.DimStyle.Render(strings.Repeat("░", width-filled))
}
