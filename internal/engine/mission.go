package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

// CanGenerateMission reports whether a new mission may be created: none may
// be active, and the user needs at least two habits to pick a least- and
// most-consistent pair from.
func CanGenerateMission(active *models.Mission, habitCount int) bool {
	return active == nil && habitCount >= constants.MissionMinHabits
}

// SelectMissionHabits picks the least and most consistent habits (by current
// streak, ties broken by longest streak) as inputs for mission generation.
// ok is false when fewer than two habits exist.
func SelectMissionHabits(habits []models.Habit) (least, most models.Habit, ok bool) {
	if len(habits) < constants.MissionMinHabits {
		return models.Habit{}, models.Habit{}, false
	}
	least, most = habits[0], habits[0]
	for _, h := range habits[1:] {
		if h.Streak < least.Streak || (h.Streak == least.Streak && h.LongestStreak < least.LongestStreak) {
			least = h
		}
		if h.Streak > most.Streak || (h.Streak == most.Streak && h.LongestStreak > most.LongestStreak) {
			most = h
		}
	}
	return least, most, true
}

// NewMission builds a mission targeting the given habit. The target count is
// clamped to [3,5] regardless of what the content generator produced.
func NewMission(habitID, title, description string, targetCompletions int, now time.Time) models.Mission {
	if targetCompletions < constants.MissionMinTarget {
		targetCompletions = constants.MissionMinTarget
	}
	if targetCompletions > constants.MissionMaxTarget {
		targetCompletions = constants.MissionMaxTarget
	}
	return models.Mission{
		ID:                uuid.New().String(),
		HabitID:           habitID,
		Title:             title,
		Description:       description,
		TargetCompletions: targetCompletions,
		Reward:            models.MissionReward{Type: models.RewardShield, Amount: 1},
		CreatedAt:         now,
	}
}

// ProgressMission increments a mission's completion count for the given
// habit. Returns the updated mission and whether it just completed. A
// completed mission, or one targeting a different habit, is returned
// unchanged.
func ProgressMission(mission models.Mission, habitID string) (models.Mission, bool) {
	if mission.IsCompleted || mission.HabitID != habitID {
		return mission, false
	}
	mission.CurrentCompletions++
	if mission.CurrentCompletions >= mission.TargetCompletions {
		mission.CurrentCompletions = mission.TargetCompletions
		mission.IsCompleted = true
		return mission, true
	}
	return mission, false
}

// ExpireMission returns nil when the mission is uncompleted and more than 7
// days old, otherwise the mission unchanged. Run on every load.
func ExpireMission(mission *models.Mission, now time.Time, loc *time.Location) *models.Mission {
	if mission == nil {
		return nil
	}
	if mission.IsCompleted {
		return mission
	}
	if DaysBetween(mission.CreatedAt, now, loc) > constants.MissionMaxAgeDays {
		return nil
	}
	return mission
}
