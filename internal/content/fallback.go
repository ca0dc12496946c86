package content

import (
	"context"
	"fmt"

	"github.com/julianstephens/ember/internal/models"
)

// Fallback is the deterministic local generator used when no API key is
// configured or a remote call fails. Its output depends only on its inputs,
// which keeps everything built on top of it testable offline.
type Fallback struct{}

var _ Generator = Fallback{}

func (Fallback) GenerateMission(_ context.Context, least, most models.Habit, _ string) (MissionContent, error) {
	return MissionContent{
		Title:             fmt.Sprintf("Rebuild your %s habit", least.Title),
		Description:       fmt.Sprintf("You kept %q going strong. This week, give %q the same attention.", most.Title, least.Title),
		TargetCompletions: 3,
	}, nil
}

func (Fallback) GenerateDailyBriefing(_ context.Context, userName string, habits []models.Habit, _ *models.Mission, _ string) (Briefing, error) {
	b := Briefing{Greeting: fmt.Sprintf("Good day, %s. One habit at a time.", userName)}
	// Focus on the habit closest to breaking: lowest streak first
	lowest := -1
	for _, h := range habits {
		if lowest < 0 || h.Streak < lowest {
			lowest = h.Streak
			b.MostImportantHabitID = h.ID
		}
	}
	return b, nil
}

func (Fallback) GenerateMicroVersion(_ context.Context, habitTitle, _ string) (string, error) {
	return fmt.Sprintf("Do two minutes of %s", habitTitle), nil
}

func (Fallback) Translate(_ context.Context, text, _, _ string) (string, error) {
	// No local translation capability; the untranslated text is the fallback
	return text, nil
}
