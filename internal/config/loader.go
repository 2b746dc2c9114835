package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search paths.
const FileName = "waterrun.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.waterrun/config.yaml -> ./configs/waterrun.yaml -> embedded default
//
// An explicit path must exist and validate. Implicit files that fail to parse
// or validate are skipped with a warning.
func Load(customPath string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return Config{}, err
		}
		logger.Debug("config loaded", "path", customPath)
		return cfg, nil
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadFile(path)
		if err != nil {
			logger.Warn("ignoring config file", "path", path, "err", err)
			continue
		}
		logger.Debug("config loaded", "path", path)
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		logger.Warn("embedded config unusable, using built-in values", "err", err)
		return Default(), nil
	}
	return cfg, nil
}

// LoadFile reads, parses and validates a single file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
// Keys missing from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// searchPaths returns the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".waterrun", "config.yaml"))
	}
	return append(paths, filepath.Join("configs", FileName))
}

// Validate reports every violated constraint at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world: size must be positive")
	check(c.World.CycleWidth > 0, "world: cycle_width must be positive")
	check(c.World.RetireBound < 0, "world: retire_bound must be negative")

	check(c.Player.Width > 0 && c.Player.Height > 0, "player: size must be positive")
	check(c.Player.JumpImpulse > 0, "player: jump_impulse must be positive")
	check(c.Player.MaxLives > 0, "player: max_lives must be positive")
	check(len(c.Player.PushBack) == c.Player.MaxLives+1,
		"player: push_back needs %d entries, got %d", c.Player.MaxLives+1, len(c.Player.PushBack))

	check(c.Targets.PerCycle > 0, "targets: per_cycle must be positive")
	check(len(c.Targets.Categories) == TargetCategories,
		"targets: categories needs %d entries, got %d", TargetCategories, len(c.Targets.Categories))
	for i, cat := range c.Targets.Categories {
		check(cat.Width > 0 && cat.Height > 0, "targets: category %d: size must be positive", i)
		check(cat.Variants > 0, "targets: category %d: variants must be positive", i)
	}

	o := c.Obstacles
	check(o.Chance >= 0 && o.Chance <= 1, "obstacles: chance must be within [0, 1]")
	check(o.Retries > 0, "obstacles: retries must be positive")
	check(o.IntervalMin > 0 && o.IntervalMin < o.IntervalMax, "obstacles: interval range is empty")
	check(o.OffsetMin < o.OffsetMax, "obstacles: offset range is empty")
	check(o.HitWidth > 0 && o.HitWidth <= o.Width, "obstacles: hit_width must be within (0, width]")
	check(o.Height > 0, "obstacles: height must be positive")
	check(o.MinToTarget >= 0 && o.MinToObstacle >= 0, "obstacles: spacing must not be negative")

	check(c.Chase.Speed > 0, "chase: speed must be positive")
	check(c.Chase.MinTrailGap >= 0 && c.Chase.MinTrailGap < c.Chase.CatchGap,
		"chase: min_trail_gap must be below catch_gap")

	check(c.Timing.TickInterval > 0, "timing: tick_interval must be positive")
	check(c.Timing.Invulnerability >= 0, "timing: invulnerability must not be negative")

	check(ascending(c.Milestones.Distance), "milestones: distance must be strictly ascending")
	check(ascending(c.Milestones.Deliveries), "milestones: deliveries must be strictly ascending")

	for _, d := range Difficulties() {
		t, ok := c.Difficulties[d]
		if !ok {
			errs = append(errs, fmt.Errorf("difficulties: missing tier %q", d))
			continue
		}
		check(t.ScrollSpeed > 0, "difficulties: %s: scroll_speed must be positive", d)
		check(t.Gravity > 0, "difficulties: %s: gravity must be positive", d)
	}

	return errors.Join(errs...)
}

func ascending(vals []int) bool {
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			return false
		}
	}
	return len(vals) == 0 || vals[0] > 0
}
