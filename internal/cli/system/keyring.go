package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/keyring"
)

// KeyringSetCmd stores the content-generation API key in the OS keyring
type KeyringSetCmd struct {
	APIKey string `arg:"" help:"API key for the content generation service."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(cmd.APIKey) == "" {
		return errors.New("API key must not be empty")
	}
	if err := keyring.SetAPIKey(cmd.APIKey); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	fmt.Println("✓ API key stored in OS keyring")
	fmt.Println("  Generated mission and briefing content is now enabled.")
	return nil
}

// KeyringShowCmd reports whether an API key is stored, masking the value
type KeyringShowCmd struct{}

func (cmd *KeyringShowCmd) Run(ctx *cli.Context) error {
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key stored. Use 'ember keyring set' to store one")
		}
		return fmt.Errorf("failed to read API key from keyring: %w", err)
	}
	fmt.Printf("API key stored: %s\n", maskKey(key))
	return nil
}

// KeyringClearCmd removes the stored API key
type KeyringClearCmd struct{}

func (cmd *KeyringClearCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key stored")
		}
		return fmt.Errorf("failed to delete API key: %w", err)
	}
	fmt.Println("✓ API key removed from OS keyring")
	fmt.Println("  Content falls back to local templates.")
	return nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
