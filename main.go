// rosterboard - A terminal client for the school activities roster.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rosterboard/internal/api"
	"github.com/jeranaias/rosterboard/internal/cli"
	"github.com/jeranaias/rosterboard/internal/config"
	"github.com/jeranaias/rosterboard/internal/ui/board"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Program reference for the config watcher
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return
	case cli.CmdVersion:
		cli.HandleVersion(os.Stdout)
		return
	case cli.CmdTUI:
		err = runTUI(args)
	default:
		err = runCommand(cmd, args)
	}

	if err != nil {
		cli.DisplayError(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

// runCommand runs one headless command.
func runCommand(cmd cli.Command, args cli.Args) error {
	env, err := cli.NewEnv(args)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cmd {
	case cli.CmdList:
		return cli.HandleList(ctx, env, args)
	case cli.CmdSignup:
		return cli.HandleSignup(ctx, env, args)
	case cli.CmdUnregister:
		return cli.HandleUnregister(ctx, env, args)
	case cli.CmdHistory:
		return cli.HandleHistory(ctx, env, args)
	case cli.CmdConfig:
		return cli.HandleConfig(env, args)
	}
	return fmt.Errorf("unhandled command %s", cmd)
}

// runTUI starts the interactive board.
func runTUI(args cli.Args) error {
	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}

	// The screen belongs to the board; diagnostics go to the log file.
	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(logPath, cli.LogPrefix)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := log.Default()

	opts := board.Options{
		Client:         api.NewClientWithConfig(cfg.ClientConfig(logger)),
		Logger:         logger,
		Theme:          cfg.UI.Theme,
		ServerURL:      cfg.Server.URL,
		RequestTimeout: cfg.Timeout(),
	}
	if cfg.Journal.Enabled {
		journal, err := cli.OpenJournal(cfg)
		if err != nil {
			logger.Printf("JOURNAL_OPEN_FAILED | error=%v", err)
		} else {
			defer journal.Close()
			opts.Journal = journal
		}
	}

	p := tea.NewProgram(board.New(opts), tea.WithAltScreen())

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if watcher := watchConfig(args, logger); watcher != nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}

// watchConfig forwards configuration changes to the running board. With no
// config file yet, it watches where a TOML file would be created.
func watchConfig(args cli.Args, logger *log.Logger) *config.Watcher {
	path := args.ConfigPath
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		paths, err := config.CandidatePaths()
		if err != nil {
			return nil
		}
		path = paths[0]
	}

	watcher, err := config.Watch(path, 0, func(cfg *config.Config, err error) {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(board.ConfigReloadedMsg{Config: cfg, Err: err})
		}
	})
	if err != nil {
		logger.Printf("CONFIG_WATCH_FAILED | path=%s error=%v", path, err)
		return nil
	}
	return watcher
}
