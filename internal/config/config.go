// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/rosterboard/internal/api"
	"github.com/jeranaias/rosterboard/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete rosterboard configuration.
type Config struct {
	Server  ServerConfig  `toml:"server" yaml:"server" json:"server"`
	UI      UIConfig      `toml:"ui" yaml:"ui" json:"ui"`
	Journal JournalConfig `toml:"journal" yaml:"journal" json:"journal"`
	Log     LogConfig     `toml:"log" yaml:"log" json:"log"`
}

// ServerConfig describes the activities service.
type ServerConfig struct {
	// URL is the service root, e.g. http://127.0.0.1:8000
	URL string `toml:"url" yaml:"url" json:"url"`
	// TimeoutSecs bounds each request
	TimeoutSecs int `toml:"timeout_secs" yaml:"timeout_secs" json:"timeout_secs"`
	// RequestsPerSecond and Burst shape outgoing requests
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `toml:"burst" yaml:"burst" json:"burst"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" yaml:"theme" json:"theme"`
}

// JournalConfig controls the local mutation journal.
type JournalConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled" json:"enabled"`
	// Path of the SQLite file (empty = ~/.rosterboard/journal.db)
	Path string `toml:"path" yaml:"path" json:"path"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// File receives TUI diagnostics (empty = ~/.rosterboard/rosterboard.log)
	File string `toml:"file" yaml:"file" json:"file"`
}

// envOverrides lists the ROSTERBOARD_* variables. Zero values mean unset.
type envOverrides struct {
	URL     string        `env:"ROSTERBOARD_URL"`
	Timeout time.Duration `env:"ROSTERBOARD_TIMEOUT"`
	Theme   string        `env:"ROSTERBOARD_THEME"`
	Journal string        `env:"ROSTERBOARD_JOURNAL"`
	LogFile string        `env:"ROSTERBOARD_LOG_FILE"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:               "http://127.0.0.1:8000",
			TimeoutSecs:       10,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Journal: JournalConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the rosterboard configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rosterboard"), nil
}

// CandidatePaths returns the config files Load looks for, in order.
func CandidatePaths() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.json"),
	}, nil
}

// FindConfigFile returns the first existing candidate path, or "" if none
// exists.
func FindConfigFile() string {
	paths, err := CandidatePaths()
	if err != nil {
		return ""
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// JournalPath returns the journal location, resolving the default.
func (c *Config) JournalPath() (string, error) {
	if c.Journal.Path != "" {
		return c.Journal.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal.db"), nil
}

// LogPath returns the TUI log file location, resolving the default.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rosterboard.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the first config file found, falling back
// to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	if path := FindConfigFile(); path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. The format follows
// the extension: .json, .yaml/.yml, anything else is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file over cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// SetDefaults fills zero values that have no meaningful zero.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Server.URL == "" {
		c.Server.URL = defaults.Server.URL
	}
	c.Server.URL = strings.TrimRight(c.Server.URL, "/")
	if c.Server.TimeoutSecs == 0 {
		c.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if c.Server.RequestsPerSecond == 0 {
		c.Server.RequestsPerSecond = defaults.Server.RequestsPerSecond
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = defaults.Server.Burst
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
}

// ApplyEnvOverrides applies ROSTERBOARD_* environment variables:
//   - ROSTERBOARD_URL: overrides server.url
//   - ROSTERBOARD_TIMEOUT: overrides server.timeout_secs (a duration, e.g. "5s")
//   - ROSTERBOARD_THEME: overrides ui.theme
//   - ROSTERBOARD_JOURNAL: overrides journal.path; "off" disables the journal
//   - ROSTERBOARD_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.URL != "" {
		c.Server.URL = o.URL
	}
	if o.Timeout > 0 {
		secs := int(o.Timeout.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		c.Server.TimeoutSecs = secs
	}
	if o.Theme != "" {
		c.UI.Theme = o.Theme
	}
	switch strings.ToLower(o.Journal) {
	case "":
	case "off", "false", "0":
		c.Journal.Enabled = false
	default:
		c.Journal.Enabled = true
		c.Journal.Path = o.Journal
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Server.URL)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{Field: "server.url", Message: fmt.Sprintf("invalid URL: %v", err)})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, ValidationError{Field: "server.url", Message: fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme)})
	case u.Host == "":
		errs = append(errs, ValidationError{Field: "server.url", Message: "missing host"})
	}

	if c.Server.TimeoutSecs <= 0 {
		errs = append(errs, ValidationError{Field: "server.timeout_secs", Message: "must be positive"})
	}
	if c.Server.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{Field: "server.requests_per_second", Message: "cannot be negative"})
	}
	if c.Server.Burst < 0 {
		errs = append(errs, ValidationError{Field: "server.burst", Message: "cannot be negative"})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// Timeout returns the request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// ClientConfig returns the activities client configuration.
func (c *Config) ClientConfig(logger *log.Logger) *api.ClientConfig {
	cc := api.DefaultConfig()
	cc.BaseURL = c.Server.URL
	cc.Timeout = c.Timeout()
	cc.RequestsPerSecond = c.Server.RequestsPerSecond
	cc.Burst = c.Server.Burst
	cc.Logger = logger
	return cc
}

// =============================================================================
// SAVE
// =============================================================================

// SaveTOML writes cfg to path, creating the directory if needed.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# rosterboard configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return sb.String()
}
