// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Server.URL != "http://127.0.0.1:8000" {
		t.Errorf("Server.URL = %q, want %q", cfg.Server.URL, "http://127.0.0.1:8000")
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", cfg.Timeout())
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("UI.Theme = %q, want auto", cfg.UI.Theme)
	}
	if !cfg.Journal.Enabled {
		t.Error("journal should default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromPath_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "config.toml", "[server]\nurl = \"https://school.example/\"\ntimeout_secs = 3\n\n[ui]\ntheme = \"Light\"\n"},
		{"yaml", "config.yaml", "server:\n  url: https://school.example/\n  timeout_secs: 3\nui:\n  theme: Light\n"},
		{"json", "config.json", `{"server":{"url":"https://school.example/","timeout_secs":3},"ui":{"theme":"Light"}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadFromPath(writeFile(t, tc.file, tc.content))
			require.NoError(t, err)

			assert.Equal(t, "https://school.example", cfg.Server.URL)
			assert.Equal(t, 3*time.Second, cfg.Timeout())
			assert.Equal(t, "light", cfg.UI.Theme)
			// Unset keys keep their defaults.
			assert.Equal(t, 5, cfg.Server.Burst)
			assert.True(t, cfg.Journal.Enabled)
		})
	}
}

func TestLoadFromPath_Errors(t *testing.T) {
	_, err := LoadFromPath(writeFile(t, "config.toml", "[server\n"))
	assert.Error(t, err)

	_, err = LoadFromPath(writeFile(t, "config.toml", "[ui]\ntheme = \"neon\"\n"))
	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs), "got %v", err)
	assert.Equal(t, "ui.theme", verrs[0].Field)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad scheme", func(c *Config) { c.Server.URL = "ftp://x" }, "server.url"},
		{"no host", func(c *Config) { c.Server.URL = "http://" }, "server.url"},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSecs = 0 }, "server.timeout_secs"},
		{"negative burst", func(c *Config) { c.Server.Burst = -1 }, "server.burst"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "got %v", err)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

func TestConfig_ApplyEnvOverrides(t *testing.T) {
	t.Setenv("ROSTERBOARD_URL", "http://localhost:9000")
	t.Setenv("ROSTERBOARD_TIMEOUT", "2500ms")
	t.Setenv("ROSTERBOARD_THEME", "dark")
	t.Setenv("ROSTERBOARD_JOURNAL", "/tmp/j.db")
	t.Setenv("ROSTERBOARD_LOG_FILE", "/tmp/r.log")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnvOverrides())

	assert.Equal(t, "http://localhost:9000", cfg.Server.URL)
	assert.Equal(t, 3, cfg.Server.TimeoutSecs)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "/tmp/j.db", cfg.Journal.Path)
	assert.Equal(t, "/tmp/r.log", cfg.Log.File)
}

func TestConfig_ApplyEnvOverrides_JournalOff(t *testing.T) {
	t.Setenv("ROSTERBOARD_JOURNAL", "off")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnvOverrides())
	assert.False(t, cfg.Journal.Enabled)
}

func TestConfig_ApplyEnvOverrides_BadDuration(t *testing.T) {
	t.Setenv("ROSTERBOARD_TIMEOUT", "soon")
	assert.Error(t, Default().ApplyEnvOverrides())
}

func TestLoad_UsesHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Server.URL, cfg.Server.URL)

	dir := filepath.Join(home, ".rosterboard")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ui:\n  theme: dark\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"ui":{"theme":"light"}}`), 0644))

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme, "yaml takes precedence over json")

	journal, err := cfg.JournalPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "journal.db"), journal)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Server.URL = "https://school.example"
	cfg.UI.Theme = "light"

	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://school.example", loaded.Server.URL)
	assert.Equal(t, "light", loaded.UI.Theme)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "config.toml", "[ui]\ntheme = \"dark\"\n")

	got := make(chan *Config, 4)
	w, err := Watch(path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			got <- cfg
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.UI.Theme == "light" {
				return
			}
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}
}
