// Package config loads the game settings: defaults embedded with the
// binary, an optional user file, then environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultsPath = "assets/settings.yaml"

	EnvConfig   = "SCHULTE_CONFIG"
	EnvLang     = "SCHULTE_LANG"
	EnvLogLevel = "SCHULTE_LOG_LEVEL"
	EnvDark     = "SCHULTE_DARK"
)

// AppContentReader defines the interface for reading content from the embedded file system.
type AppContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// Settings holds everything tunable about the game.
type Settings struct {
	RevealDelay  time.Duration `yaml:"reveal_delay"`
	WrongFlash   time.Duration `yaml:"wrong_flash"`
	TickInterval time.Duration `yaml:"tick_interval"`
	HideSolved   bool          `yaml:"hide_solved"`
	DarkMode     bool          `yaml:"dark_mode"`
	Language     string        `yaml:"language"`
	LogLevel     string        `yaml:"log_level"`
	Sound        Sound         `yaml:"sound"`
}

// Sound configures the feedback cues.
type Sound struct {
	Enabled     bool          `yaml:"enabled"`
	Volume      float64       `yaml:"volume"` // base-2 exponent, 0 is unchanged
	CorrectFile string        `yaml:"correct_file"`
	WrongFile   string        `yaml:"wrong_file"`
	Haptic      time.Duration `yaml:"haptic"`
}

// Load reads the embedded defaults, overlays the user file and applies
// environment overrides. lookup defaults to os.LookupEnv.
func Load(content AppContentReader, lookup func(string) (string, bool)) (*Settings, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	data, err := content.ReadFile(defaultsPath)
	if err != nil {
		return nil, errors.Wrap(err, "read default settings")
	}
	s := &Settings{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "parse default settings")
	}

	path, explicit := lookup(EnvConfig)
	if !explicit {
		path = userFile()
	}
	if path != "" {
		if err := s.overlay(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if v, ok := lookup(EnvLang); ok {
		s.Language = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		s.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvDark); ok {
		dark, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, errors.Wrapf(err, "%s", EnvDark)
		}
		s.DarkMode = dark
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Defaults returns the embedded settings alone, ignoring user files and the
// environment.
func Defaults(content AppContentReader) (*Settings, error) {
	return Load(content, func(key string) (string, bool) {
		if key == EnvConfig {
			return "", true
		}
		return "", false
	})
}

func (s *Settings) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read settings %s", path)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return errors.Wrapf(err, "parse settings %s", path)
	}
	return nil
}

// Validate rejects settings the game cannot run with.
func (s *Settings) Validate() error {
	if s.RevealDelay < 0 {
		return errors.Errorf("reveal_delay must not be negative, got %s", s.RevealDelay)
	}
	if s.WrongFlash <= 0 {
		return errors.Errorf("wrong_flash must be positive, got %s", s.WrongFlash)
	}
	if s.TickInterval <= 0 {
		return errors.Errorf("tick_interval must be positive, got %s", s.TickInterval)
	}
	if s.Sound.Haptic < 0 {
		return errors.Errorf("sound.haptic must not be negative, got %s", s.Sound.Haptic)
	}
	if s.Sound.Volume < -10 || s.Sound.Volume > 2 {
		return errors.Errorf("sound.volume must be within [-10, 2], got %g", s.Sound.Volume)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log_level %q", s.LogLevel)
	}
	return nil
}

func userFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "schulte", "settings.yaml")
}
