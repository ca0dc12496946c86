package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/models"
)

type HabitAddCmd struct {
	Title       string `arg:"" optional:"" help:"Habit title."`
	Description string `short:"d" help:"Longer description."`
	Identity    string `short:"i" help:"Identity this habit reinforces (e.g. Runner)."`
	Cue         string `short:"c" default:"anytime" help:"Cue window (morning|afternoon|evening|anytime)."`
	Interactive bool   `help:"Prompt for fields with an interactive form."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.promptForm(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("habit title is required")
	}

	cue, err := parseCue(c.Cue)
	if err != nil {
		return err
	}

	if _, err := ctx.Store.GetHabitByTitle(c.Title); err == nil {
		return fmt.Errorf("a habit named %q already exists", c.Title)
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Description: c.Description,
		IdentityTag: c.Identity,
		Cue:         cue,
		CreatedAt:   time.Now(),
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	// Tagging a habit with a new identity registers it on the profile so XP
	// has somewhere to accrue.
	if c.Identity != "" {
		profile, err := ctx.Store.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		if profile.IdentityByName(c.Identity) == nil {
			profile.Identities = append(profile.Identities, models.NewIdentity(c.Identity))
			if err := ctx.Store.SaveProfile(profile); err != nil {
				return fmt.Errorf("failed to register identity: %w", err)
			}
		}
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", habit.Title, habit.ID)
	return nil
}

func (c *HabitAddCmd) promptForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&c.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Identity").
				Description("Who does this habit make you? (e.g. Runner, Writer)").
				Value(&c.Identity),
			huh.NewSelect[string]().
				Title("Cue").
				Options(
					huh.NewOption("Anytime", "anytime"),
					huh.NewOption("Morning", "morning"),
					huh.NewOption("Afternoon", "afternoon"),
					huh.NewOption("Evening", "evening"),
				).
				Value(&c.Cue),
			huh.NewInput().
				Title("Description").
				Value(&c.Description),
		),
	).WithTheme(huh.ThemeDracula()).Run()
}

func parseCue(s string) (models.Cue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning":
		return models.CueMorning, nil
	case "afternoon":
		return models.CueAfternoon, nil
	case "evening":
		return models.CueEvening, nil
	case "anytime", "":
		return models.CueAnytime, nil
	default:
		return "", fmt.Errorf("invalid cue: %s", s)
	}
}
