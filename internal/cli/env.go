// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/rosterboard/internal/api"
	"github.com/jeranaias/rosterboard/internal/app"
	"github.com/jeranaias/rosterboard/internal/config"
	"github.com/jeranaias/rosterboard/internal/confirm"
	"github.com/jeranaias/rosterboard/internal/storage"
)

// LogPrefix starts every diagnostic line.
const LogPrefix = "rosterboard: "

// Env is everything a command needs.
type Env struct {
	Config  *config.Config
	Client  app.Client
	Journal *storage.Journal // nil when the journal is disabled
	Logger  *log.Logger

	Stdout io.Writer
	Stderr io.Writer

	// Confirmer overrides the unregister confirmation. Nil means --yes or
	// an interactive prompt.
	Confirmer confirm.Confirmer

	Now func() time.Time
}

// LoadConfig reads the configuration named by --config, or the first file
// found in the config directory, and applies --url.
func LoadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if url := strings.TrimSpace(args.URL); url != "" {
		cfg.Server.URL = url
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// NewEnv builds the environment for a CLI command. Diagnostics go to
// stderr only with --verbose.
func NewEnv(args Args) (*Env, error) {
	cfg, err := LoadConfig(args)
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, LogPrefix, log.LstdFlags)
	if args.Verbose {
		logger.SetOutput(os.Stderr)
	}

	env := &Env{
		Config: cfg,
		Client: api.NewClientWithConfig(cfg.ClientConfig(logger)),
		Logger: logger,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Now:    time.Now,
	}

	if cfg.Journal.Enabled {
		journal, err := OpenJournal(cfg)
		if err != nil {
			logger.Printf("JOURNAL_OPEN_FAILED | error=%v", err)
		} else {
			env.Journal = journal
		}
	}
	return env, nil
}

// OpenJournal opens the journal at the configured path.
func OpenJournal(cfg *config.Config) (*storage.Journal, error) {
	path, err := cfg.JournalPath()
	if err != nil {
		return nil, fmt.Errorf("journal path: %w", err)
	}
	return storage.Open(path)
}

// Close releases the journal.
func (e *Env) Close() error {
	if e.Journal == nil {
		return nil
	}
	return e.Journal.Close()
}

// newApp builds a headless app for one command.
func (e *Env) newApp(confirmer confirm.Confirmer) *app.App {
	opts := app.Options{
		Client:         e.Client,
		Confirmer:      confirmer,
		Logger:         e.Logger,
		Schedule:       noSchedule,
		RequestTimeout: e.Config.Timeout(),
	}
	// A nil *Journal must not become a non-nil interface.
	if e.Journal != nil {
		opts.Journal = e.Journal
	}
	return app.New(opts)
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
