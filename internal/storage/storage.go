package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/ember/internal/models"
)

// NewProvider selects a provider from the config path: a .json path gets
// the file-backed store, anything else the SQLite store.
func NewProvider(path string) Provider {
	if strings.HasSuffix(path, ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}

func timeNow() time.Time { return time.Now() }

func sortByCreation(habits []models.Habit) {
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
}

func sortSquadsByCreation(squads []models.Squad) {
	sort.Slice(squads, func(i, j int) bool {
		return squads[i].CreatedAt.Before(squads[j].CreatedAt)
	})
}
