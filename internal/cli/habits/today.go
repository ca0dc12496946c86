package habits

import (
	"context"
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
)

type TodayCmd struct{}

// Run prints the daily briefing: a generated greeting, each habit's state
// for the day, the active mission, and the squad's quests.
func (c *TodayCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}
	mission, err := ctx.Store.GetActiveMission()
	if err != nil {
		return err
	}

	locale := profile.Locale
	if locale == "" {
		locale = "en"
	}
	briefing := ctx.Content.GenerateDailyBriefing(context.Background(), profile.Name, habits, mission, locale)
	ctx.SaveQuota()

	fmt.Println(cli.TitleStyle.Render(briefing.Greeting))
	if briefing.MostImportantHabitID != "" {
		for _, h := range habits {
			if h.ID == briefing.MostImportantHabitID {
				fmt.Println(cli.DimStyle.Render("Focus on: " + h.Title))
				break
			}
		}
	}
	fmt.Println()

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'ember habit add'.")
		return nil
	}

	loc := ctx.Location()
	now := timeNow()
	priorityID, _ := ctx.Store.GetPriorityHabitID()

	done := 0
	for _, h := range habits {
		if h.LastCompleted != nil && engine.SameDay(*h.LastCompleted, now, loc) {
			done++
		}
		fmt.Println("  " + formatHabitLine(ctx, h, priorityID))
	}
	fmt.Printf("\n%d of %d habits done today.\n", done, len(habits))

	if mission != nil {
		fmt.Printf("\nMission: %s (%d/%d)\n", cli.TitleStyle.Render(mission.Title),
			mission.CurrentCompletions, mission.TargetCompletions)
	}

	if profile.SquadID != "" {
		if squad, err := ctx.Store.GetSquad(profile.SquadID); err == nil {
			fmt.Printf("\nSquad %s  momentum %s\n", cli.TitleStyle.Render(squad.Name),
				cli.StreakStyle.Render(fmt.Sprintf("%d", squad.SharedMomentum)))
			for _, q := range squad.DailyQuests {
				mark := "○"
				suffix := ""
				if q.IsCompleted {
					mark = "●"
					suffix = cli.DimStyle.Render(" (claimed by " + q.CompletedBy + ")")
				}
				fmt.Printf("  %s %s (+%d)%s\n", mark, q.Title, q.Points, suffix)
			}
		}
	}
	return nil
}
