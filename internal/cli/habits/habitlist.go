package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/engine"
	"github.com/julianstephens/ember/internal/models"
)

type HabitListCmd struct {
	Identity string `short:"i" help:"Only show habits for this identity."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'ember habit add'.")
		return nil
	}

	priorityID, err := ctx.Store.GetPriorityHabitID()
	if err != nil {
		return err
	}

	for _, h := range habits {
		if c.Identity != "" && !strings.EqualFold(h.IdentityTag, c.Identity) {
			continue
		}
		fmt.Println(formatHabitLine(ctx, h, priorityID))
	}
	return nil
}

func formatHabitLine(ctx *cli.Context, h models.Habit, priorityID string) string {
	var b strings.Builder

	title := cli.TitleStyle.Render(h.Title)
	if h.ID == priorityID {
		title = cli.StreakStyle.Render("★ ") + title
	}
	b.WriteString(title)

	b.WriteString("  " + cli.StreakStyle.Render(fmt.Sprintf("%d day streak", h.Streak)))
	if h.MomentumShields > 0 {
		b.WriteString("  " + cli.ShieldStyle.Render(fmt.Sprintf("%d shield(s)", h.MomentumShields)))
	}
	if h.ComebackActive() {
		b.WriteString("  " + cli.DangerStyle.Render(fmt.Sprintf(
			"comeback: %d day(s) left to win back %d", h.Comeback.DaysRemaining, h.Comeback.OriginalStreak+1)))
	}

	var details []string
	if h.IdentityTag != "" {
		details = append(details, h.IdentityTag)
	}
	if h.Cue != models.CueAnytime && h.Cue != "" {
		details = append(details, string(h.Cue))
	}
	details = append(details, fmt.Sprintf("best %d", h.LongestStreak))
	b.WriteString("  " + cli.DimStyle.Render("("+strings.Join(details, ", ")+")"))

	if h.MicroVersion != "" {
		b.WriteString("\n    " + cli.DimStyle.Render("today's micro-version: "+h.MicroVersion))
	}
	if h.LastCompleted != nil && engine.SameDay(*h.LastCompleted, timeNow(), ctx.Location()) {
		b.WriteString("  " + cli.ShieldStyle.Render("✓ done today"))
	}
	return b.String()
}
