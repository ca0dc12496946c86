package habits

import (
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
)

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	// A dangling priority pointer or mission would reference a habit the
	// user can no longer see.
	if pid, err := ctx.Store.GetPriorityHabitID(); err == nil && pid == habit.ID {
		if err := ctx.Store.ClearPriorityHabit(); err != nil {
			return fmt.Errorf("failed to clear priority habit: %w", err)
		}
	}
	if mission, err := ctx.Store.GetActiveMission(); err == nil && mission != nil && mission.HabitID == habit.ID {
		if err := ctx.Store.ClearMission(); err != nil {
			return fmt.Errorf("failed to clear mission: %w", err)
		}
		fmt.Println("The active mission targeted this habit and was cancelled.")
	}

	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}
