package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/cli/habits"
	"github.com/julianstephens/ember/internal/cli/identities"
	"github.com/julianstephens/ember/internal/cli/missions"
	"github.com/julianstephens/ember/internal/cli/squads"
	"github.com/julianstephens/ember/internal/cli/system"
	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/content"
	"github.com/julianstephens/ember/internal/errors"
	"github.com/julianstephens/ember/internal/keyring"
	"github.com/julianstephens/ember/internal/logger"
	"github.com/julianstephens/ember/internal/storage"
	"github.com/julianstephens/ember/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path (.json extension selects the JSON store)." type:"path" default:"~/.config/ember/ember.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init  system.InitCmd      `cmd:"" help:"Initialize ember storage and your profile."`
	Today habits.TodayCmd     `cmd:"" default:"1" help:"Show the daily briefing."`
	Done  habits.HabitDoneCmd `cmd:"" help:"Mark a habit done for today."`
	Habit struct {
		Add      habits.HabitAddCmd      `cmd:"" help:"Add a new habit."`
		List     habits.HabitListCmd     `cmd:"" help:"List habits with streaks and shields."`
		Delete   habits.HabitDeleteCmd   `cmd:"" help:"Delete a habit."`
		Micro    habits.HabitMicroCmd    `cmd:"" help:"Get a scaled-down version of a habit for a hard day."`
		Priority habits.HabitPriorityCmd `cmd:"" help:"Set, show, or clear the priority habit."`
	} `cmd:"" help:"Manage habits."`
	Mission  missions.MissionStatusCmd `cmd:"" help:"Show the active mission, generating one when eligible."`
	Identity struct {
		List identities.IdentityListCmd `cmd:"" default:"1" help:"List identities with level and XP."`
	} `cmd:"" help:"Track who your habits are making you."`
	Squad struct {
		Create  squads.SquadCreateCmd  `cmd:"" help:"Create a squad."`
		Join    squads.SquadJoinCmd    `cmd:"" help:"Request to join a squad."`
		Approve squads.SquadApproveCmd `cmd:"" help:"Approve a pending join request."`
		Deny    squads.SquadDenyCmd    `cmd:"" help:"Deny a pending join request."`
		Kick    squads.SquadKickCmd    `cmd:"" help:"Vote to remove a member."`
		Claim   squads.SquadClaimCmd   `cmd:"" help:"Claim a daily quest."`
		Status  squads.SquadStatusCmd  `cmd:"" default:"1" help:"Show squad momentum, members, and quests."`
		Feed    squads.SquadFeedCmd    `cmd:"" help:"Show the recent activity feed."`
		Chat    squads.SquadChatCmd    `cmd:"" help:"Read or post squad chat messages."`
	} `cmd:"" help:"Squad momentum and voting."`
	Teams    squads.TeamsCmd    `cmd:"" help:"Show the team leaderboard and challenges."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Rollover system.RolloverCmd `cmd:"" help:"Run the day-boundary pass by hand."`
	Keyring  struct {
		Set   system.KeyringSetCmd   `cmd:"" help:"Store the content API key in the OS keyring."`
		Show  system.KeyringShowCmd  `cmd:"" help:"Show whether an API key is stored."`
		Clear system.KeyringClearCmd `cmd:"" help:"Remove the stored API key."`
	} `cmd:"" help:"Manage the content API key."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ember"),
		kong.Description("Habit continuity and reward engine: streaks, shields, comebacks, and squads"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		errors.Fatalf("failed to initialize logging: %v", err)
	}

	store := storage.NewProvider(CLI.Config)
	appCtx := &cli.Context{Store: store}

	command := ""
	if ctx.Selected() != nil {
		command = ctx.Selected().Name
	}

	// Init creates the store itself; every other command needs it loaded,
	// then gets the content service and the once-a-day rollover pass.
	if command != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()

		appCtx.Content = newContentService(store)

		if command != "doctor" && command != "rollover" {
			if err := appCtx.Rollover(false); err != nil {
				errors.Fatal(err)
			}
		}
	} else {
		appCtx.Content = content.NewService(nil, content.QuotaState{}, time.Local)
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

// newContentService wires the generated-content stack: remote generation is
// enabled only when an API key is present in the OS keyring, and the daily
// call budget is restored from settings.
func newContentService(store storage.Provider) *content.Service {
	quota := content.QuotaState{}
	loc := defaultLocation(store)

	if settings, err := store.GetSettings(); err == nil {
		quota = content.QuotaState{
			Limit: settings.DailyContentQuota,
			Used:  settings.ContentCallsUsed,
			Date:  settings.ContentQuotaDate,
		}
	}

	var remote content.Generator
	if key, err := keyring.GetAPIKey(); err == nil && key != "" {
		gen, gerr := content.NewGeminiGenerator(context.Background(), key, constants.DefaultContentModel)
		if gerr != nil {
			logger.Warn("failed to start content generator, using local templates", "error", gerr)
		} else {
			remote = gen
		}
	}

	return content.NewService(remote, quota, loc)
}

func defaultLocation(store storage.Provider) *time.Location {
	if settings, err := store.GetSettings(); err == nil {
		if loc, lerr := utils.LoadLocation(settings.Timezone); lerr == nil {
			return loc
		}
	}
	return time.Local
}
