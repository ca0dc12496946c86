package content

import (
	"context"

	"github.com/julianstephens/ember/internal/models"
)

// MissionContent is the text and target produced for a new mission. The
// engine clamps TargetCompletions to [3,5] regardless of what the generator
// returned.
type MissionContent struct {
	Title             string
	Description       string
	TargetCompletions int
}

// Briefing is the daily greeting plus the habit the user should focus on
type Briefing struct {
	Greeting             string
	MostImportantHabitID string
}

// Generator produces user-facing content. Implementations may be slow and
// may fail; callers treat every method as fallible and side-effect-free.
// Engine correctness never depends on generator output.
type Generator interface {
	GenerateMission(ctx context.Context, least, most models.Habit, locale string) (MissionContent, error)
	GenerateDailyBriefing(ctx context.Context, userName string, habits []models.Habit, mission *models.Mission, locale string) (Briefing, error)
	GenerateMicroVersion(ctx context.Context, habitTitle, locale string) (string, error)
	Translate(ctx context.Context, text, targetLocale, sourceLocale string) (string, error)
}
