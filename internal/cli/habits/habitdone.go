package habits

import (
	"fmt"
	"time"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
)

// timeNow is a stub point for tests
var timeNow = time.Now

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	result, err := ctx.CompleteHabit(c.Habit)
	if err != nil {
		return err
	}
	if !result.Changed {
		fmt.Printf("%q is already done for today.\n", result.Habit.Title)
		return nil
	}

	fmt.Printf("Completed %s  %s\n",
		cli.TitleStyle.Render(result.Habit.Title),
		cli.StreakStyle.Render(fmt.Sprintf("streak: %d", result.Habit.Streak)))

	for _, ev := range result.Events {
		switch ev.Type {
		case engine.EventShieldEarned:
			fmt.Println(cli.ShieldStyle.Render(fmt.Sprintf("  Milestone! You earned a momentum shield (%d held).", ev.Value)))
		case engine.EventComebackProgressed:
			fmt.Printf("  Comeback challenge: %d day(s) to go.\n", ev.Value)
		case engine.EventComebackResolved:
			fmt.Println(cli.StreakStyle.Render(fmt.Sprintf("  Comeback complete! Streak restored to %d.", ev.Value)))
		case engine.EventMissionCompleted:
			fmt.Println(cli.ShieldStyle.Render("  Mission accomplished! Reward: +1 momentum shield."))
		case engine.EventIdentityLeveledUp:
			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("  Level up! You are now a level %d %s.", ev.Value, result.Habit.IdentityTag)))
		}
	}

	if result.Identity != nil {
		fmt.Printf("  %s\n", cli.DimStyle.Render(fmt.Sprintf(
			"%s: level %d, %d XP", result.Identity.Name, result.Identity.Level, result.Identity.XP)))
	}
	if result.Squad != nil {
		fmt.Printf("  %s\n", cli.DimStyle.Render(fmt.Sprintf(
			"squad momentum: %d", result.Squad.SharedMomentum)))
	}

	return nil
}
