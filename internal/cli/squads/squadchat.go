package squads

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/models"
)

type SquadChatCmd struct {
	Message   string `arg:"" optional:"" help:"Message to send. Omit to read the chat."`
	Translate string `short:"t" help:"Translate displayed messages into this locale (e.g. es, fr)."`
}

func (c *SquadChatCmd) Run(ctx *cli.Context) error {
	profile, squad, err := mySquad(ctx)
	if err != nil {
		return err
	}

	if c.Message != "" {
		msg := models.ChatMessage{
			ID:        uuid.New().String(),
			SquadID:   squad.ID,
			Sender:    profile.Name,
			Text:      c.Message,
			CreatedAt: timeNow(),
		}
		if err := ctx.Store.AddChatMessage(msg); err != nil {
			return err
		}
		fmt.Println("Sent.")
		return nil
	}

	messages, err := ctx.Store.GetChatMessages(squad.ID)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		fmt.Println("No messages yet.")
		return nil
	}

	sourceLocale := profile.Locale
	if sourceLocale == "" {
		sourceLocale = "en"
	}
	for _, m := range messages {
		text := m.Text
		if c.Translate != "" && c.Translate != sourceLocale && !m.System {
			text = ctx.Content.Translate(context.Background(), m.Text, c.Translate, sourceLocale)
		}
		sender := cli.TitleStyle.Render(m.Sender)
		if m.System {
			sender = cli.DimStyle.Render("system")
			text = cli.DimStyle.Render(text)
		}
		fmt.Printf("%s %s: %s\n", cli.DimStyle.Render(m.CreatedAt.Format("15:04")), sender, text)
	}
	if c.Translate != "" {
		ctx.SaveQuota()
	}
	return nil
}
