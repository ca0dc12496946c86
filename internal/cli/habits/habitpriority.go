package habits

import (
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
)

type HabitPriorityCmd struct {
	Habit string `arg:"" optional:"" help:"Habit ID or title. Omit to show the current priority habit."`
	Clear bool   `help:"Clear the priority habit."`
}

func (c *HabitPriorityCmd) Run(ctx *cli.Context) error {
	if c.Clear {
		if err := ctx.Store.ClearPriorityHabit(); err != nil {
			return err
		}
		fmt.Println("Priority habit cleared.")
		return nil
	}

	if c.Habit == "" {
		id, err := ctx.Store.GetPriorityHabitID()
		if err != nil {
			return err
		}
		if id == "" {
			fmt.Println("No priority habit set.")
			return nil
		}
		habit, err := ctx.Store.GetHabit(id)
		if err != nil {
			return err
		}
		fmt.Printf("Priority habit: %s\n", cli.TitleStyle.Render(habit.Title))
		return nil
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Store.SetPriorityHabitID(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Priority habit set to: %s\n", cli.TitleStyle.Render(habit.Title))
	return nil
}
