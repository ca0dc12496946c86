package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
	"github.com/julianstephens/ember/internal/utils"
)

type InitCmd struct {
	Name     string `help:"Your display name."`
	Timezone string `help:"IANA timezone for day boundaries (e.g. Europe/Berlin)." default:"Local"`
	Locale   string `help:"Preferred content locale." default:"en"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		if err := c.promptForm(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("a display name is required")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone: %s", c.Timezone)
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		settings = models.Settings{DailyContentQuota: constants.DefaultDailyContentQuota}
	}
	settings.Timezone = c.Timezone
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	profile := models.UserProfile{
		Name:      c.Name,
		Locale:    c.Locale,
		CreatedAt: time.Now(),
	}
	if err := ctx.Store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if err := seedTeams(ctx); err != nil {
		return fmt.Errorf("failed to seed teams: %w", err)
	}

	fmt.Printf("Initialized ember storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Printf("Welcome, %s! Add your first habit with 'ember habit add'.\n", c.Name)
	return nil
}

func (c *InitCmd) promptForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Value(&c.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Timezone").
				Description("IANA name like America/New_York; 'Local' uses the system zone.").
				Value(&c.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(s) {
						return fmt.Errorf("unknown timezone")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Content language").
				Options(
					huh.NewOption("English", "en"),
					huh.NewOption("Spanish", "es"),
					huh.NewOption("French", "fr"),
					huh.NewOption("German", "de"),
				).
				Value(&c.Locale),
		),
	).WithTheme(huh.ThemeDracula()).Run()
}

// seedTeams populates the team leaderboard so the social surfaces are not
// empty on first run.
func seedTeams(ctx *cli.Context) error {
	teams := []models.Team{
		{ID: uuid.New().String(), Name: "Dawn Chorus", Members: []string{"ana", "bo", "cy"}, Score: 340},
		{ID: uuid.New().String(), Name: "Night Owls", Members: []string{"dee", "eli"}, Score: 280},
		{ID: uuid.New().String(), Name: "Steady Steps", Members: []string{"fin", "gus", "hana"}, Score: 215},
	}
	for _, t := range teams {
		if err := ctx.Store.SaveTeam(t); err != nil {
			return err
		}
	}
	challenge := models.TeamChallenge{
		ID:       uuid.New().String(),
		TeamID:   teams[0].ID,
		Title:    "1000 combined completions this month",
		Target:   1000,
		Progress: 612,
		EndsAt:   time.Now().AddDate(0, 0, 14),
	}
	return ctx.Store.SaveTeamChallenge(challenge)
}
