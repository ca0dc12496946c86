package squads

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
	"github.com/julianstephens/ember/internal/models"
)

type SquadCreateCmd struct {
	Name string `arg:"" help:"Squad name."`
}

func (c *SquadCreateCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.SquadID != "" {
		return fmt.Errorf("you are already in a squad; leave it before creating another")
	}

	now := timeNow()
	squad := models.Squad{
		ID:         uuid.New().String(),
		Name:       c.Name,
		Members:    []string{profile.Name},
		QuestsDate: engine.DayString(now, ctx.Location()),
		DailyQuests: cli.DefaultQuests(),
		CreatedAt:  now,
	}
	if err := ctx.Store.AddSquad(squad); err != nil {
		return err
	}

	profile.SquadID = squad.ID
	if err := ctx.Store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to link profile to squad: %w", err)
	}

	ctx.SystemChat(squad.ID, fmt.Sprintf("%s created the squad", profile.Name))
	fmt.Printf("Created squad: %s (ID: %s)\n", squad.Name, squad.ID)
	return nil
}
