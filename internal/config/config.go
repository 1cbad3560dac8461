// Package config loads the launcher configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/mudra/internal/action"
)

// Defaults applied when the file is absent or a field is unset.
const (
	DefaultStableFrames    = 6
	DefaultCooldownMs      = 3000
	DefaultMotionThreshold = 1.0
)

// ActionConfig selects one action for a finger count. Exactly one of
// the fields may be set; an empty entry means "do nothing".
type ActionConfig struct {
	Launch    string `yaml:"launch,omitempty"`     // program key or path
	URL       string `yaml:"url,omitempty"`        // URL for the default browser
	CloseLast bool   `yaml:"close_last,omitempty"` // terminate last launched app
}

// Config aggregates all application configuration.
type Config struct {
	CameraID        int     `yaml:"camera_id"`
	Mirror          *bool   `yaml:"mirror,omitempty"` // default true
	StableFrames    int     `yaml:"stable_frames"`
	CooldownMs      int     `yaml:"cooldown_ms"`
	Tolerance       float64 `yaml:"tolerance"`
	MotionThreshold float64 `yaml:"motion_threshold"`
	Headless        bool    `yaml:"headless"`
	History         *bool   `yaml:"history,omitempty"` // default true

	// Actions overrides entries of the built-in count-to-action table,
	// keyed by finger count 0-5.
	Actions map[int]ActionConfig `yaml:"actions,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		StableFrames:    DefaultStableFrames,
		CooldownMs:      DefaultCooldownMs,
		MotionThreshold: DefaultMotionThreshold,
	}
}

// Load reads a YAML file and returns the configuration with defaults
// applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if cfg.StableFrames <= 0 {
		cfg.StableFrames = DefaultStableFrames
	}
	if cfg.CooldownMs < 0 {
		return nil, fmt.Errorf("cooldown_ms must be >= 0, got %d", cfg.CooldownMs)
	}
	if cfg.CooldownMs == 0 {
		cfg.CooldownMs = DefaultCooldownMs
	}
	if cfg.MotionThreshold <= 0 {
		cfg.MotionThreshold = DefaultMotionThreshold
	}
	if cfg.CameraID < 0 {
		return nil, fmt.Errorf("camera_id must be >= 0, got %d", cfg.CameraID)
	}

	for count, entry := range cfg.Actions {
		if count < 0 || count > 5 {
			return nil, fmt.Errorf("actions key must be a finger count 0-5, got %d", count)
		}
		set := 0
		if entry.Launch != "" {
			set++
		}
		if entry.URL != "" {
			set++
		}
		if entry.CloseLast {
			set++
		}
		if set > 1 {
			return nil, fmt.Errorf("actions[%d]: launch, url and close_last are mutually exclusive", count)
		}
	}

	return &cfg, nil
}

// LoadDefault looks for config.yaml in the working directory and in
// ~/.mudra, returning the built-in defaults when no file exists.
func LoadDefault() (*Config, error) {
	candidates := []string{"config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".mudra", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Default(), nil
}

// MirrorEnabled reports whether frames should be mirrored. Defaults to
// true, matching how users expect to see their own hand.
func (c *Config) MirrorEnabled() bool {
	return c.Mirror == nil || *c.Mirror
}

// HistoryEnabled reports whether triggers are recorded to the local
// database. Defaults to true.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// Cooldown returns the minimum time between fired actions.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownMs) * time.Millisecond
}

// Table builds the count-to-action table: the built-in binding with the
// configured overrides applied.
func (c *Config) Table() action.Table {
	table := action.DefaultTable()

	for count, entry := range c.Actions {
		switch {
		case entry.Launch != "":
			table[count] = action.Action{Kind: action.KindLaunch, Target: entry.Launch}
		case entry.URL != "":
			table[count] = action.Action{Kind: action.KindOpenURL, Target: entry.URL}
		case entry.CloseLast:
			table[count] = action.Action{Kind: action.KindCloseLast}
		default:
			table[count] = action.Action{Kind: action.KindNone}
		}
	}

	return table
}
