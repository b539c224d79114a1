// Package config loads the YAML configuration of the field application
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/asciifield/constants"
)

// Config is the full application configuration
type Config struct {
	Field   FieldConfig   `yaml:"field"`
	Player  PlayerConfig  `yaml:"player"`
	Input   InputConfig   `yaml:"input"`
	Editor  EditorConfig  `yaml:"editor"`
	Audio   AudioConfig   `yaml:"audio"`
	Storage StorageConfig `yaml:"storage"`
}

// FieldConfig sizes the main field
type FieldConfig struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// PlayerConfig tunes the player agent
type PlayerConfig struct {
	Token          string        `yaml:"token"`
	RepeatInterval time.Duration `yaml:"repeat_interval"`
	TopExclusive   bool          `yaml:"top_exclusive"` // reject moves onto the northmost row
	Spawn          SpawnConfig   `yaml:"spawn"`
}

// SpawnConfig is the initial player position
type SpawnConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// InputConfig tunes key release synthesis
type InputConfig struct {
	ReleaseTimeout time.Duration `yaml:"release_timeout"`
}

// EditorConfig sets the editor start state
type EditorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Brush   string `yaml:"brush"`
}

// AudioConfig toggles feedback sounds
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StorageConfig locates saved maps
type StorageConfig struct {
	AppName string `yaml:"app_name"` // gdata application directory
	Map     string `yaml:"map"`      // map document loaded at startup, empty for none
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Field: FieldConfig{
			Columns: constants.DefaultColumns,
			Rows:    constants.DefaultRows,
		},
		Player: PlayerConfig{
			Token:          string(constants.PlayerToken),
			RepeatInterval: constants.RepeatInterval,
		},
		Input: InputConfig{
			ReleaseTimeout: constants.KeyReleaseTimeout,
		},
		Editor: EditorConfig{
			Brush: "#",
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			AppName: constants.AppName,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges and cross-field constraints
func (c *Config) Validate() error {
	var errs []error

	if c.Field.Columns <= 0 || c.Field.Rows <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %dx%d", c.Field.Columns, c.Field.Rows))
	}
	if utf8.RuneCountInString(c.Player.Token) != 1 {
		errs = append(errs, fmt.Errorf("player token must be a single character, got %q", c.Player.Token))
	}
	if c.Player.RepeatInterval <= 0 {
		errs = append(errs, fmt.Errorf("player repeat_interval must be positive, got %v", c.Player.RepeatInterval))
	}
	if c.Input.ReleaseTimeout <= c.Player.RepeatInterval {
		errs = append(errs, fmt.Errorf("input release_timeout %v must exceed repeat_interval %v",
			c.Input.ReleaseTimeout, c.Player.RepeatInterval))
	}

	// Spawn must fall inside the even-rounded field
	hw := (c.Field.Columns + c.Field.Columns&1) / 2
	hh := (c.Field.Rows + c.Field.Rows&1) / 2
	sp := c.Player.Spawn
	if sp.X < -hw || sp.X > hw || sp.Y < -hh || sp.Y > hh {
		errs = append(errs, fmt.Errorf("player spawn (%d,%d) outside field", sp.X, sp.Y))
	} else if c.Player.TopExclusive && sp.Y == hh {
		errs = append(errs, fmt.Errorf("player spawn (%d,%d) on excluded top row", sp.X, sp.Y))
	}

	if c.Storage.AppName == "" {
		errs = append(errs, errors.New("storage app_name cannot be empty"))
	}

	return errors.Join(errs...)
}

// TokenRune returns the player token as a rune
func (c *Config) TokenRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Player.Token)
	return r
}
