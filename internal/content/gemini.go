package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/ember/internal/constants"
	"github.com/julianstephens/ember/internal/models"
)

// GeminiGenerator produces content through the Gemini API. Every method
// returns an error on any API or parsing failure; the Service wraps this
// generator and substitutes the deterministic fallback.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator with the given API key.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("content API key is required")
	}
	if model == "" {
		model = constants.DefaultContentModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create content client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

var _ Generator = (*GeminiGenerator)(nil)

func (g *GeminiGenerator) generateText(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("content generation returned no text")
	}
	return text, nil
}

func (g *GeminiGenerator) GenerateMission(ctx context.Context, least, most models.Habit, locale string) (MissionContent, error) {
	prompt := fmt.Sprintf(
		`A user keeps the habit %q consistently but struggles with %q.
Write a one-week mission to revive the struggling habit. Respond in locale %q
with strict JSON: {"title": string, "description": string, "target_completions": number between 3 and 5}.`,
		most.Title, least.Title, locale)

	text, err := g.generateText(ctx, prompt)
	if err != nil {
		return MissionContent{}, err
	}

	var parsed struct {
		Title             string `json:"title"`
		Description       string `json:"description"`
		TargetCompletions int    `json:"target_completions"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return MissionContent{}, fmt.Errorf("unparseable mission content: %w", err)
	}
	if parsed.Title == "" {
		return MissionContent{}, fmt.Errorf("mission content missing title")
	}
	return MissionContent{
		Title:             parsed.Title,
		Description:       parsed.Description,
		TargetCompletions: parsed.TargetCompletions,
	}, nil
}

func (g *GeminiGenerator) GenerateDailyBriefing(ctx context.Context, userName string, habits []models.Habit, mission *models.Mission, locale string) (Briefing, error) {
	var sb strings.Builder
	for _, h := range habits {
		fmt.Fprintf(&sb, "- id=%s title=%q streak=%d\n", h.ID, h.Title, h.Streak)
	}
	missionLine := "none"
	if mission != nil {
		missionLine = fmt.Sprintf("%q (%d/%d)", mission.Title, mission.CurrentCompletions, mission.TargetCompletions)
	}
	prompt := fmt.Sprintf(
		`Greet %s for a new day of habit tracking. Their habits:
%s
Active mission: %s.
Respond in locale %q with strict JSON: {"greeting": string, "most_important_habit_id": string}.`,
		userName, sb.String(), missionLine, locale)

	text, err := g.generateText(ctx, prompt)
	if err != nil {
		return Briefing{}, err
	}

	var parsed struct {
		Greeting             string `json:"greeting"`
		MostImportantHabitID string `json:"most_important_habit_id"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return Briefing{}, fmt.Errorf("unparseable briefing: %w", err)
	}
	if parsed.Greeting == "" {
		return Briefing{}, fmt.Errorf("briefing missing greeting")
	}
	return Briefing{Greeting: parsed.Greeting, MostImportantHabitID: parsed.MostImportantHabitID}, nil
}

func (g *GeminiGenerator) GenerateMicroVersion(ctx context.Context, habitTitle, locale string) (string, error) {
	prompt := fmt.Sprintf(
		`Suggest a two-minute starter version of the habit %q. Respond in locale %q with the suggestion text only, one line.`,
		habitTitle, locale)
	return g.generateText(ctx, prompt)
}

func (g *GeminiGenerator) Translate(ctx context.Context, text, targetLocale, sourceLocale string) (string, error) {
	prompt := fmt.Sprintf(
		`Translate the following text from locale %q to locale %q. Respond with the translation only.

%s`,
		sourceLocale, targetLocale, text)
	return g.generateText(ctx, prompt)
}

// stripCodeFence removes a surrounding markdown code fence the model may
// have wrapped around JSON output
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
