package system

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/ember/internal/applock"
	"github.com/julianstephens/ember/internal/cli"
	"github.com/julianstephens/ember/internal/keyring"
	"github.com/julianstephens/ember/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: storage reachable
	storeOK := false
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storeOK = true
	}

	// Check 2: settings and timezone
	if storeOK {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings: SKIPPED (storage not reachable)\n")
	}

	// Check 3: profile present
	if storeOK {
		if _, err := ctx.Store.GetProfile(); err != nil {
			fmt.Printf("❌ Profile: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Profile: OK\n")
		}
	} else {
		fmt.Printf("⊘ Profile: SKIPPED (storage not reachable)\n")
	}

	// Check 4: data validation
	if storeOK {
		if err := checkHabits(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (storage not reachable)\n")
	}

	// Check 5: stale app lock (warning only)
	configDir := filepath.Dir(ctx.Store.GetConfigPath())
	if stale, err := applock.IsStale(configDir); err != nil {
		fmt.Printf("⚠ App lock: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else if stale {
		fmt.Printf("⚠ App lock: WARNING\n")
		fmt.Printf("   Stale lockfile found; it will be reclaimed on the next run.\n")
	} else {
		fmt.Printf("✓ App lock: OK\n")
	}

	// Check 6: keyring availability (warning only)
	if keyring.IsAvailable() {
		if _, err := keyring.GetAPIKey(); err == nil {
			fmt.Printf("✓ Keyring: OK (API key stored)\n")
		} else {
			fmt.Printf("✓ Keyring: OK (no API key stored, using local content)\n")
		}
	} else {
		fmt.Printf("⚠ Keyring: WARNING\n")
		fmt.Printf("   OS keyring unavailable; generated content is disabled.\n")
	}

	// Check 7: clock sanity
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   System time appears incorrect: %s\n", now.Format(time.RFC3339))
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("configured timezone %q is not a valid IANA name", settings.Timezone)
	}
	if settings.DailyContentQuota < 0 {
		return fmt.Errorf("daily content quota is negative: %d", settings.DailyContentQuota)
	}
	return nil
}

func checkHabits(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	seen := make(map[string]bool)
	for _, h := range habits {
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", h.ID)
		}
		seen[h.ID] = true
		if h.Streak > h.LongestStreak {
			return fmt.Errorf("habit %q has streak %d above its recorded best %d", h.Title, h.Streak, h.LongestStreak)
		}
		if h.Comeback != nil && h.Comeback.IsActive && h.Streak != 0 {
			return fmt.Errorf("habit %q has an active comeback challenge but a non-zero streak", h.Title)
		}
	}

	if pid, err := ctx.Store.GetPriorityHabitID(); err == nil && pid != "" {
		if _, err := ctx.Store.GetHabit(pid); err != nil {
			return fmt.Errorf("priority pointer references missing habit %s", pid)
		}
	}
	return nil
}
