// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the process configuration: world dimensions, the simulation
// clock parameters, and the economy constants. Content balance (towers,
// enemies, waves) lives in internal/defs instead.
type Settings struct {
	Grid    GridSettings    `yaml:"grid"`
	Clock   ClockSettings   `yaml:"clock"`
	Economy EconomySettings `yaml:"economy"`
	Spatial SpatialSettings `yaml:"spatial"`
}

type GridSettings struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize float64 `yaml:"cell_size"` // pixels per cell edge
	SpawnX   int     `yaml:"spawn_x"`
	SpawnY   int     `yaml:"spawn_y"`
	ExitX    int     `yaml:"exit_x"`
	ExitY    int     `yaml:"exit_y"`
}

type ClockSettings struct {
	TickRate       int     `yaml:"tick_rate"`         // simulation ticks per second
	MaxFrameTimeMS float64 `yaml:"max_frame_time_ms"` // accumulator clamp
}

type EconomySettings struct {
	StartingCredits int     `yaml:"starting_credits"`
	StartingLives   int     `yaml:"starting_lives"`
	RefundSameRound float64 `yaml:"refund_same_round"` // sell fraction, tower placed this round
	RefundLater     float64 `yaml:"refund_later"`      // sell fraction otherwise
}

type SpatialSettings struct {
	BucketSize float64 `yaml:"bucket_size"` // spatial hash bucket edge, pixels
}

// Default returns the compiled-in settings used when no file is supplied.
func Default() Settings {
	return Settings{
		Grid: GridSettings{
			Width:    20,
			Height:   15,
			CellSize: 32.0,
			SpawnX:   0,
			SpawnY:   7,
			ExitX:    19,
			ExitY:    7,
		},
		Clock: ClockSettings{
			TickRate:       60,
			MaxFrameTimeMS: 250,
		},
		Economy: EconomySettings{
			StartingCredits: 200,
			StartingLives:   20,
			RefundSameRound: 1.0,
			RefundLater:     0.7,
		},
		Spatial: SpatialSettings{
			BucketSize: 64.0,
		},
	}
}

// Load reads settings from a YAML file, layering the file's values over the
// defaults so partial files stay valid. A missing path returns the defaults.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Default(), fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := settings.validate(); err != nil {
		return Default(), err
	}
	return settings, nil
}

func (s Settings) validate() error {
	if s.Grid.Width <= 0 || s.Grid.Height <= 0 {
		return fmt.Errorf("invalid grid dimensions %dx%d", s.Grid.Width, s.Grid.Height)
	}
	if s.Clock.TickRate <= 0 {
		return fmt.Errorf("invalid tick rate %d", s.Clock.TickRate)
	}
	if s.Clock.MaxFrameTimeMS <= 0 {
		return fmt.Errorf("invalid max frame time %v", s.Clock.MaxFrameTimeMS)
	}
	if s.Economy.StartingLives <= 0 {
		return fmt.Errorf("invalid starting lives %d", s.Economy.StartingLives)
	}
	return nil
}

// Timestep returns the fixed simulation timestep in seconds.
func (s ClockSettings) Timestep() float64 {
	return 1.0 / float64(s.TickRate)
}

// MaxFrameTime returns the accumulator clamp in seconds.
func (s ClockSettings) MaxFrameTime() float64 {
	return s.MaxFrameTimeMS / 1000.0
}
