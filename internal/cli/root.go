package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ember/internal/applock"
	"github.com/julianstephens/ember/internal/content"
	"github.com/julianstephens/ember/internal/engine"
	"github.com/julianstephens/ember/internal/logger"
	"github.com/julianstephens/ember/internal/models"
	"github.com/julianstephens/ember/internal/storage"
	"github.com/julianstephens/ember/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Content *content.Service
}

// Location returns the user's configured timezone, falling back to the
// system zone when settings are unreadable or the zone name is invalid.
func (c *Context) Location() *time.Location {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Local
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("invalid timezone in settings, using system zone", "timezone", settings.Timezone)
		return time.Local
	}
	return loc
}

// ResolveHabit looks a habit up by ID first, then by exact title.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	habit, err := c.Store.GetHabit(ref)
	if err == nil {
		return habit, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}
	habit, err = c.Store.GetHabitByTitle(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
	}
	return habit, err
}

// Ripple appends a feed entry. Feed writes are best-effort and never fail
// the command that triggered them.
func (c *Context) Ripple(actor, message string) {
	r := models.RippleEvent{
		ID:        uuid.New().String(),
		Actor:     actor,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := c.Store.AddRipple(r); err != nil {
		logger.Warn("failed to record feed entry", "error", err)
	}
}

// SystemChat posts a system-authored message into a squad's chat.
func (c *Context) SystemChat(squadID, text string) {
	m := models.ChatMessage{
		ID:        uuid.New().String(),
		SquadID:   squadID,
		Sender:    "system",
		Text:      text,
		System:    true,
		CreatedAt: time.Now(),
	}
	if err := c.Store.AddChatMessage(m); err != nil {
		logger.Warn("failed to record chat message", "error", err)
	}
}

// SaveQuota writes the content service's call budget back to settings.
func (c *Context) SaveQuota() {
	if c.Content == nil {
		return
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("failed to load settings for quota save", "error", err)
		return
	}
	quota := c.Content.Quota()
	settings.ContentCallsUsed = quota.Used
	settings.ContentQuotaDate = quota.Date
	if err := c.Store.SaveSettings(settings); err != nil {
		logger.Warn("failed to persist content quota", "error", err)
	}
}

// DefaultQuests builds a fresh set of daily squad quests.
func DefaultQuests() []models.DailyQuest {
	return []models.DailyQuest{
		{ID: uuid.New().String(), Title: "Everyone completes at least one habit", Points: 15},
		{ID: uuid.New().String(), Title: "Complete a habit before noon", Points: 10},
		{ID: uuid.New().String(), Title: "Send an encouragement in squad chat", Points: 5},
	}
}

// Rollover advances every habit across any missed calendar days, expires a
// stale mission, and regenerates squad quests for the new day. It runs at
// most once per calendar day unless forced, and always under the app lock so
// completions never interleave with the day-boundary pass.
func (c *Context) Rollover(force bool) error {
	loc := c.Location()
	now := time.Now()
	today := engine.DayString(now, loc)

	settings, err := c.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !force && settings.LastRolloverDate == today {
		return nil
	}

	configDir := filepath.Dir(c.Store.GetConfigPath())
	lock, err := applock.Acquire(configDir)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := lock.Release(); rerr != nil {
			logger.Warn("failed to release app lock", "error", rerr)
		}
	}()

	habits, err := c.Store.GetAllHabits(false)
	if err != nil {
		return fmt.Errorf("failed to load habits for rollover: %w", err)
	}

	var actor string
	if profile, perr := c.Store.GetProfile(); perr == nil {
		actor = profile.Name
	}

	for _, habit := range habits {
		updated, events := engine.EvaluateRollover(habit, now, loc)
		if len(events) == 0 && updated.MicroVersion == habit.MicroVersion {
			continue
		}
		if err := c.Store.UpdateHabit(updated); err != nil {
			return fmt.Errorf("failed to persist rollover for habit %s: %w", habit.ID, err)
		}
		for _, ev := range events {
			logger.Info("rollover event", "type", string(ev.Type), "habit", habit.Title, "value", ev.Value)
			switch ev.Type {
			case engine.EventShieldConsumed:
				c.Ripple(actor, fmt.Sprintf("used a momentum shield to protect %q", habit.Title))
			case engine.EventComebackStarted:
				c.Ripple(actor, fmt.Sprintf("started a comeback challenge for %q", habit.Title))
			case engine.EventComebackFailed:
				c.Ripple(actor, fmt.Sprintf("lost the comeback challenge for %q", habit.Title))
			case engine.EventStreakBroken:
				c.Ripple(actor, fmt.Sprintf("broke their %q streak", habit.Title))
			}
		}
	}

	mission, err := c.Store.GetActiveMission()
	if err != nil {
		return fmt.Errorf("failed to load active mission: %w", err)
	}
	if mission != nil && engine.ExpireMission(mission, now, loc) == nil {
		logger.Info("mission expired", "mission", mission.Title)
		if err := c.Store.ClearMission(); err != nil {
			return fmt.Errorf("failed to clear expired mission: %w", err)
		}
	}

	squads, err := c.Store.GetAllSquads()
	if err != nil {
		return fmt.Errorf("failed to load squads for rollover: %w", err)
	}
	for _, squad := range squads {
		refreshed := engine.RegenerateQuests(squad, today, DefaultQuests())
		if refreshed.QuestsDate == squad.QuestsDate {
			continue
		}
		if err := c.Store.UpdateSquad(refreshed); err != nil {
			return fmt.Errorf("failed to persist quests for squad %s: %w", squad.ID, err)
		}
	}

	settings.LastRolloverDate = today
	if err := c.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to record rollover date: %w", err)
	}
	return nil
}

// CompleteHabit runs the full completion pipeline for one habit: streak
// update, mission progress, identity XP, and squad momentum, persisting
// every record the engine touched.
func (c *Context) CompleteHabit(ref string) (engine.CompletionResult, error) {
	loc := c.Location()
	now := time.Now()

	habit, err := c.ResolveHabit(ref)
	if err != nil {
		return engine.CompletionResult{}, err
	}

	profile, err := c.Store.GetProfile()
	if err != nil {
		return engine.CompletionResult{}, fmt.Errorf("failed to load profile: %w", err)
	}
	identity := profile.IdentityByName(habit.IdentityTag)

	mission, err := c.Store.GetActiveMission()
	if err != nil {
		return engine.CompletionResult{}, fmt.Errorf("failed to load active mission: %w", err)
	}

	var squad *models.Squad
	if profile.SquadID != "" {
		sq, err := c.Store.GetSquad(profile.SquadID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return engine.CompletionResult{}, fmt.Errorf("failed to load squad: %w", err)
		}
		if err == nil {
			squad = &sq
		}
	}

	result := engine.Complete(habit, identity, mission, squad, now, loc)
	if !result.Changed {
		return result, nil
	}

	if err := c.Store.UpdateHabit(result.Habit); err != nil {
		return result, fmt.Errorf("failed to persist habit: %w", err)
	}
	if result.Identity != nil {
		*identity = *result.Identity
		if err := c.Store.SaveProfile(profile); err != nil {
			return result, fmt.Errorf("failed to persist profile: %w", err)
		}
	}
	if result.Mission != nil {
		// The reward is claimed the moment the mission completes, so a
		// finished mission is destroyed rather than saved. That frees the
		// single active slot for the next one.
		if result.Mission.IsCompleted {
			if err := c.Store.ClearMission(); err != nil {
				return result, fmt.Errorf("failed to clear completed mission: %w", err)
			}
		} else if err := c.Store.SaveMission(*result.Mission); err != nil {
			return result, fmt.Errorf("failed to persist mission: %w", err)
		}
	}
	if result.Squad != nil {
		if err := c.Store.UpdateSquad(*result.Squad); err != nil {
			return result, fmt.Errorf("failed to persist squad: %w", err)
		}
	}

	c.Ripple(profile.Name, fmt.Sprintf("completed %q (streak %d)", result.Habit.Title, result.Habit.Streak))
	for _, ev := range result.Events {
		logger.Info("completion event", "type", string(ev.Type), "habit", result.Habit.Title, "value", ev.Value)
		switch ev.Type {
		case engine.EventShieldEarned:
			c.Ripple(profile.Name, fmt.Sprintf("earned a momentum shield on %q", result.Habit.Title))
		case engine.EventComebackResolved:
			c.Ripple(profile.Name, fmt.Sprintf("completed the comeback challenge for %q", result.Habit.Title))
		case engine.EventMissionCompleted:
			c.Ripple(profile.Name, "completed a mission and earned a momentum shield")
		case engine.EventIdentityLeveledUp:
			c.Ripple(profile.Name, fmt.Sprintf("reached level %d as %s", ev.Value, habit.IdentityTag))
		}
	}

	// The priority pointer is a one-day nudge; clear it once that habit is done.
	if pid, perr := c.Store.GetPriorityHabitID(); perr == nil && pid == result.Habit.ID {
		if err := c.Store.ClearPriorityHabit(); err != nil {
			logger.Warn("failed to clear priority habit", "error", err)
		}
	}

	return result, nil
}
