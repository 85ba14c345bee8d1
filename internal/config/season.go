package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// SeasonCastEntry pins a named AI houseguest into the season cast.
type SeasonCastEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// SeasonFile describes one season: its number, title, and an optional pinned
// cast. When the pinned cast is shorter than the configured cast size, the
// remaining seats fill from the houseguest identity pool.
type SeasonFile struct {
	Season int               `yaml:"season"`
	Title  string            `yaml:"title"`
	Cast   []SeasonCastEntry `yaml:"cast"`
}

var (
	season         *SeasonFile
	seasonLoadOnce sync.Once
	seasonLoadErr  error
)

// LoadSeason loads the season definition from the given YAML path.
func LoadSeason(path string) error {
	seasonLoadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			seasonLoadErr = fmt.Errorf("failed to read season file: %w", err)
			return
		}

		var s SeasonFile
		if err := yaml.Unmarshal(data, &s); err != nil {
			seasonLoadErr = fmt.Errorf("failed to unmarshal season file: %w", err)
			return
		}
		season = &s
	})
	return seasonLoadErr
}

// GetSeason returns the loaded season definition, or nil if never loaded.
func GetSeason() *SeasonFile {
	return season
}

// GetSeasonNumber returns the configured season number, defaulting to 1.
func GetSeasonNumber() int {
	if season == nil || season.Season <= 0 {
		return 1
	}
	return season.Season
}
