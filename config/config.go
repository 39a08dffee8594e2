package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fret-focus/game"
)

// ControllerType identifies the kind of controller
type ControllerType string

const (
	ControllerLaunchpadX    ControllerType = "launchpad-x"
	ControllerLaunchpadMini ControllerType = "launchpad-mini"
	ControllerGuitar        ControllerType = "guitar" // MIDI guitar in mono (one channel per string) mode
)

var (
	ErrInvalidTuning  = errors.New("tuning must list 6 open-string pitches")
	ErrInvalidTargets = errors.New("targets must be between 1 and 7")
)

// ControllerConfig defines a saved controller configuration
type ControllerConfig struct {
	PortName     string         `json:"portName"`
	Type         ControllerType `json:"type"`
	AutoConnect  bool           `json:"autoConnect"`
	FirstChannel int            `json:"firstChannel,omitempty"` // guitar: 0-based channel of the high E string
}

// TrainerConfig stores the last-used trainer settings
type TrainerConfig struct {
	Targets     int              `json:"targets"`
	Mode        game.Mode        `json:"mode"`
	Accidentals game.Accidentals `json:"accidentals"`
	Staff       bool             `json:"staff,omitempty"`
	Hidden      bool             `json:"hidden,omitempty"`
	Tuning      []int            `json:"tuning,omitempty"` // high string first
}

// ServerConfig configures the local HTTP API
type ServerConfig struct {
	Addr    string   `json:"addr,omitempty"`
	Origins []string `json:"origins,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Controllers []ControllerConfig `json:"controllers,omitempty"`
	Trainer     TrainerConfig      `json:"trainer"`
	Server      ServerConfig       `json:"server,omitempty"`
	Palette     string             `json:"palette,omitempty"` // path to a .gpl file
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	s := game.DefaultSettings()
	return &Config{
		Controllers: []ControllerConfig{
			{
				PortName:    "Launchpad X LPX MIDI",
				Type:        ControllerLaunchpadX,
				AutoConnect: true,
			},
		},
		Trainer: TrainerConfig{
			Targets:     s.Count,
			Mode:        s.Mode,
			Accidentals: s.Accidentals,
		},
		Server: ServerConfig{
			Addr:    "127.0.0.1:8080",
			Origins: []string{"http://localhost:5173"},
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fret-focus"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, or returns defaults if it does not exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise be clamped silently
func (c *Config) Validate() error {
	if n := len(c.Trainer.Tuning); n != 0 && n != game.NumStrings {
		return ErrInvalidTuning
	}
	if c.Trainer.Targets < game.MinTargets || c.Trainer.Targets > game.MaxTargets {
		return ErrInvalidTargets
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Settings converts the stored trainer section into game settings
func (c *Config) Settings() game.Settings {
	s := game.Settings{
		Count:       c.Trainer.Targets,
		Mode:        c.Trainer.Mode,
		Accidentals: c.Trainer.Accidentals,
		Staff:       c.Trainer.Staff,
		Hidden:      c.Trainer.Hidden,
		Tuning:      game.StandardTuning,
	}
	if len(c.Trainer.Tuning) == game.NumStrings {
		copy(s.Tuning[:], c.Trainer.Tuning)
	}
	return s
}

// SetSettings stores game settings into the trainer section
func (c *Config) SetSettings(s game.Settings) {
	c.Trainer.Targets = s.Count
	c.Trainer.Mode = s.Mode
	c.Trainer.Accidentals = s.Accidentals
	c.Trainer.Staff = s.Staff
	c.Trainer.Hidden = s.Hidden
	if s.Tuning == game.StandardTuning {
		c.Trainer.Tuning = nil
	} else {
		c.Trainer.Tuning = append([]int(nil), s.Tuning[:]...)
	}
}

// FindController finds a controller config by port name
func (c *Config) FindController(portName string) *ControllerConfig {
	for i := range c.Controllers {
		if c.Controllers[i].PortName == portName {
			return &c.Controllers[i]
		}
	}
	return nil
}

// AddController adds or updates a controller config
func (c *Config) AddController(ctrl ControllerConfig) {
	for i := range c.Controllers {
		if c.Controllers[i].PortName == ctrl.PortName {
			c.Controllers[i] = ctrl
			return
		}
	}
	c.Controllers = append(c.Controllers, ctrl)
}

// AutoConnectControllers returns controllers with autoConnect enabled
func (c *Config) AutoConnectControllers() []ControllerConfig {
	var result []ControllerConfig
	for _, ctrl := range c.Controllers {
		if ctrl.AutoConnect {
			result = append(result, ctrl)
		}
	}
	return result
}
