// Package config handles the XDG configuration directory, the optional
// config file and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// SessionFile is the stored session token filename.
	SessionFile = "session.json"

	// DefaultAPIBaseURL is the local development API address.
	DefaultAPIBaseURL = "http://127.0.0.1:8000/api"
)

// Config holds configuration paths and settings.
//
// Settings are resolved in this order, later wins:
//  1. defaults;
//  2. config.yaml in Dir;
//  3. environment variables;
//  4. command-line flags (applied by the dispatcher).
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// APIBaseURL is the root of the remote task API, without a trailing slash.
	APIBaseURL string `yaml:"api_base_url" env:"TASKMAN_API_BASE_URL"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug" env:"TASKMAN_DEBUG"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`
}

// New creates a Config for the default or specified config directory and
// loads config.yaml and the environment on top of the defaults.
// If configDir is empty, uses XDG_CONFIG_HOME/taskman or $HOME/.config/taskman.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, APIBaseURL: DefaultAPIBaseURL}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) load() error {
	path := c.FilePath()
	if _, err := os.Stat(path); err == nil {
		// ReadConfig overlays the environment after the file.
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		return nil
	}
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to the optional config file.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
