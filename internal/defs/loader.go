// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LupusDei/space-towers-sub001/pkg/logger"
)

// Library bundles the three definition tables a running game consumes.
type Library struct {
	Towers  map[string]TowerDefinition
	Enemies map[string]EnemyDefinition
	Waves   map[int]WaveDefinition
}

// LoadDir reads towers.json, enemies.json and waves.json from dir. Files that
// are absent fall back to the compiled-in defaults, so a fresh checkout runs
// without any content directory at all.
func LoadDir(dir string) (*Library, error) {
	lib := DefaultLibrary()
	if dir == "" {
		return lib, nil
	}

	if err := loadInto(filepath.Join(dir, "towers.json"), &lib.Towers, towerKey); err != nil {
		return nil, err
	}
	if err := loadInto(filepath.Join(dir, "enemies.json"), &lib.Enemies, enemyKey); err != nil {
		return nil, err
	}
	if err := loadWaves(filepath.Join(dir, "waves.json"), lib); err != nil {
		return nil, err
	}
	logger.Log.WithField("dir", dir).Debugf(
		"loaded %d towers, %d enemies, %d waves", len(lib.Towers), len(lib.Enemies), len(lib.Waves))
	return lib, nil
}

func towerKey(d TowerDefinition) string { return d.ID }
func enemyKey(d EnemyDefinition) string { return d.ID }

// loadInto reads a JSON array of definitions and replaces *table when the
// file exists. A missing file keeps the current (default) table.
func loadInto[T any](path string, table *map[string]T, key func(T) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read definitions file %s: %w", path, err)
	}

	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}

	loaded := make(map[string]T, len(entries))
	for _, def := range entries {
		loaded[key(def)] = def
	}
	*table = loaded
	return nil
}

func loadWaves(path string, lib *Library) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read definitions file %s: %w", path, err)
	}

	var entries []struct {
		Number int `json:"number"`
		WaveDefinition
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}

	waves := make(map[int]WaveDefinition, len(entries))
	for _, e := range entries {
		waves[e.Number] = e.WaveDefinition
	}
	lib.Waves = waves
	return nil
}

// Wave returns the definition for waveNumber. Numbers past the last defined
// wave repeat the final stretch with the health scale compounding, so late
// games keep getting harder without hand-authored content.
func (l *Library) Wave(waveNumber int) WaveDefinition {
	if def, ok := l.Waves[waveNumber]; ok {
		return def
	}

	last := 0
	for n := range l.Waves {
		if n > last {
			last = n
		}
	}
	if last == 0 {
		return WaveDefinition{}
	}

	// Repeat the final five waves (or all of them when fewer exist).
	cycle := 5
	if cycle > last {
		cycle = last
	}
	base := last - cycle + 1
	repeat := base + ((waveNumber - base) % cycle)
	def := l.Waves[repeat]

	scale := def.HealthScale
	if scale <= 0 {
		scale = 1.0
	}
	rounds := (waveNumber - base) / cycle
	for i := 0; i < rounds; i++ {
		scale *= 1.25
	}
	def.HealthScale = scale
	return def
}
