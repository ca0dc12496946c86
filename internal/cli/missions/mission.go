package missions

import (
	"context"
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
)

type MissionStatusCmd struct{}

// Run shows the active mission, generating one first when the user is
// eligible: no active mission and at least two habits to pair up.
func (c *MissionStatusCmd) Run(ctx *cli.Context) error {
	mission, err := ctx.Store.GetActiveMission()
	if err != nil {
		return err
	}

	if mission == nil {
		habits, err := ctx.Store.GetAllHabits(false)
		if err != nil {
			return err
		}
		if !engine.CanGenerateMission(nil, len(habits)) {
			fmt.Println("No active mission. Add at least two habits to unlock missions.")
			return nil
		}

		least, most, ok := engine.SelectMissionHabits(habits)
		if !ok {
			fmt.Println("No active mission.")
			return nil
		}

		locale := "en"
		if profile, perr := ctx.Store.GetProfile(); perr == nil && profile.Locale != "" {
			locale = profile.Locale
		}
		mc := ctx.Content.GenerateMission(context.Background(), least, most, locale)
		ctx.SaveQuota()

		m := engine.NewMission(least.ID, mc.Title, mc.Description, mc.TargetCompletions, timeNow())
		if err := ctx.Store.SaveMission(m); err != nil {
			return err
		}
		mission = &m
		fmt.Println(cli.TitleStyle.Render("New mission!"))
	}

	fmt.Printf("%s\n", cli.TitleStyle.Render(mission.Title))
	if mission.Description != "" {
		fmt.Println(mission.Description)
	}

	target, err := ctx.Store.GetHabit(mission.HabitID)
	if err == nil {
		fmt.Printf("Target habit: %s\n", target.Title)
	}
	fmt.Printf("Progress: %s\n", cli.StreakStyle.Render(
		fmt.Sprintf("%d/%d", mission.CurrentCompletions, mission.TargetCompletions)))
	fmt.Println(cli.DimStyle.Render("Reward: +1 momentum shield"))
	return nil
}
