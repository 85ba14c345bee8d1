package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig tunes season mechanics and host pacing.
type GameConfig struct {
	CastSize int `json:"cast_size"`
	JurySize int `json:"jury_size"`
	// PovPlayers caps how many competitors play the weekly veto competition.
	PovPlayers int `json:"pov_players"`
	// AutoAdvanceTicks configures how many ticks the host waits between
	// automatic advances once no human competitor remains alive.
	AutoAdvanceTicks int `json:"auto_advance_ticks"`
	// WinnerPrizeGold is the wallet award settled for a human season winner.
	WinnerPrizeGold int64 `json:"winner_prize_gold"`
}

const (
	defaultCastSize         = 12
	defaultJurySize         = 7
	defaultPovPlayers       = 6
	defaultAutoAdvanceTicks = 3
	defaultWinnerPrizeGold  = 500000
)

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or nil if never loaded.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetCastSize returns the configured cast size, or the default.
func GetCastSize() int {
	if cfg == nil || cfg.CastSize <= 0 {
		return defaultCastSize
	}
	return cfg.CastSize
}

// GetJurySize returns the configured jury size, or the default.
func GetJurySize() int {
	if cfg == nil || cfg.JurySize <= 0 {
		return defaultJurySize
	}
	return cfg.JurySize
}

// GetPovPlayers returns the veto competition cap, or the default.
func GetPovPlayers() int {
	if cfg == nil || cfg.PovPlayers <= 0 {
		return defaultPovPlayers
	}
	return cfg.PovPlayers
}

// GetAutoAdvanceTicks returns the spectator auto-advance cadence, or the default.
func GetAutoAdvanceTicks() int {
	if cfg == nil || cfg.AutoAdvanceTicks <= 0 {
		return defaultAutoAdvanceTicks
	}
	return cfg.AutoAdvanceTicks
}

// GetWinnerPrizeGold returns the season prize amount, or the default.
func GetWinnerPrizeGold() int64 {
	if cfg == nil || cfg.WinnerPrizeGold <= 0 {
		return defaultWinnerPrizeGold
	}
	return cfg.WinnerPrizeGold
}
