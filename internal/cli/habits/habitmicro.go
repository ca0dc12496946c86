package habits

import (
	"context"
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
)

type HabitMicroCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

// Run offers a scaled-down version of a habit for a low-energy day. The
// suggestion is transient: it lives until the habit is completed or the day
// rolls over.
func (c *HabitMicroCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	locale := "en"
	if profile, perr := ctx.Store.GetProfile(); perr == nil && profile.Locale != "" {
		locale = profile.Locale
	}

	micro := ctx.Content.GenerateMicroVersion(context.Background(), habit.Title, locale)
	habit.MicroVersion = micro
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}
	ctx.SaveQuota()

	fmt.Printf("Micro-version for %s:\n  %s\n", cli.TitleStyle.Render(habit.Title), micro)
	fmt.Println(cli.DimStyle.Render("Completing the micro-version counts as completing the habit."))
	return nil
}
