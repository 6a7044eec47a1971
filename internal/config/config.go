// Package config handles loading and saving application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName = "todo-journal"

	// EnvAPIURL overrides api.base_url.
	EnvAPIURL = "TODO_API_URL"
	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "TODO_JOURNAL_CONFIG_DIR"

	DefaultBaseURL = "http://localhost:5000/api"
	DefaultLocale  = "de"
)

// Config represents the application configuration.
type Config struct {
	API APIConfig `yaml:"api"`
	UI  UIConfig  `yaml:"ui"`
	Log LogConfig `yaml:"log"`

	// StateDB is the SQLite file holding the list view state and theme.
	// Relative paths are resolved against the config directory.
	StateDB string `yaml:"state_db,omitempty"`
}

// APIConfig holds settings for the todo & journal service.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	VimMode bool `yaml:"vim_mode"`
	// Locale selects the collation used when sorting text, e.g. "de" or "en".
	Locale    string `yaml:"locale"`
	NotifyDue bool   `yaml:"notify_due"`
	Theme     string `yaml:"theme,omitempty"` // "dark" or "light"
}

// LogConfig holds logging settings. Logs go to File; with no file set,
// nothing is logged so the TUI is not disturbed.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			VimMode: true,
			Locale:  DefaultLocale,
		},
		Log: LogConfig{
			Level: "info",
		},
		StateDB: "state.db",
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", appName)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads .env from the working directory if present, then the config
// file, then applies environment overrides.
// If the file doesn't exist, returns a default configuration.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path and applies environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv()
	cfg.normalize(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.API.BaseURL = v
	}
}

func (c *Config) normalize(dir string) {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 30 * time.Second
	}
	if strings.TrimSpace(c.UI.Locale) == "" {
		c.UI.Locale = DefaultLocale
	}
	if c.StateDB == "" {
		c.StateDB = "state.db"
	}
	if !filepath.IsAbs(c.StateDB) && !strings.HasPrefix(c.StateDB, "file:") {
		c.StateDB = filepath.Join(dir, c.StateDB)
	}
	if c.Log.File != "" && !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(dir, c.Log.File)
	}
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path.
func SaveFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Template is written by `todo-journal init`.
const Template = `# todo-journal configuration
# Location: ~/.config/todo-journal/config.yaml

api:
  # Base URL of the todo & journal service (env: TODO_API_URL)
  base_url: "http://localhost:5000/api"
  timeout: 30s

ui:
  # Enable Vim-style keybindings (default: true)
  vim_mode: true
  # Collation used when sorting by text or category
  locale: "de"
  # Desktop notification for open todos due today
  notify_due: false

# SQLite file for the list view state (relative to this directory)
state_db: "state.db"

log:
  # file: "todo-journal.log"
  level: "info"
`

// WriteTemplate creates the config file at path from Template. It refuses
// to overwrite an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
