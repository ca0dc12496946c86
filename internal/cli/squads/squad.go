package squads

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/models"
	"github.com/julianstephens/ember/internal/storage"
)

// timeNow is a stub point for tests
var timeNow = time.Now

// resolveSquad looks a squad up by ID, then by exact name.
func resolveSquad(ctx *cli.Context, ref string) (models.Squad, error) {
	squad, err := ctx.Store.GetSquad(ref)
	if err == nil {
		return squad, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Squad{}, err
	}
	squads, err := ctx.Store.GetAllSquads()
	if err != nil {
		return models.Squad{}, err
	}
	for _, sq := range squads {
		if sq.Name == ref {
			return sq, nil
		}
	}
	return models.Squad{}, fmt.Errorf("no squad matches %q", ref)
}

// mySquad returns the profile and the squad the user belongs to.
func mySquad(ctx *cli.Context) (models.UserProfile, models.Squad, error) {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return models.UserProfile{}, models.Squad{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.SquadID == "" {
		return profile, models.Squad{}, fmt.Errorf("you are not in a squad")
	}
	squad, err := ctx.Store.GetSquad(profile.SquadID)
	if err != nil {
		return profile, models.Squad{}, fmt.Errorf("failed to load squad: %w", err)
	}
	return profile, squad, nil
}
