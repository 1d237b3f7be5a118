// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdList
	CmdSignup
	CmdUnregister
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command's name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdList:
		return "list"
	case CmdSignup:
		return "signup"
	case CmdUnregister:
		return "unregister"
	case CmdHistory:
		return "history"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	URL        string
	Verbose    bool
	JSON       bool

	// Command-specific
	Activity   string
	Email      string
	Yes        bool
	HTML       bool
	Out        string
	Limit      int
	Subcommand string
}

// DefaultHistoryLimit is the number of journal entries history shows.
const DefaultHistoryLimit = 20

const usageText = `rosterboard - sign up for extracurricular activities from the terminal

Usage:
  rosterboard                              Start the interactive board
  rosterboard tui                          Same as above
  rosterboard list [--html] [--out FILE]   Print the roster once
  rosterboard signup ACTIVITY EMAIL        Sign a student up
  rosterboard unregister ACTIVITY EMAIL [--yes]
                                           Remove a participant
  rosterboard history [--limit N] [--json] Show recent signups and removals
  rosterboard config [show|path]           Show the effective configuration
  rosterboard version                      Show version information

Global flags:
  --url URL        Activities service base URL
  --config FILE    Configuration file (.toml, .yaml or .json)
  --verbose, -v    Log diagnostics to stderr

Environment:
  ROSTERBOARD_URL, ROSTERBOARD_TIMEOUT, ROSTERBOARD_THEME,
  ROSTERBOARD_JOURNAL, ROSTERBOARD_LOG_FILE

Version: %s
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "rosterboard version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// boolFlags never take a value.
var boolFlags = []string{"verbose", "v", "json", "yes", "y", "html", "help", "h", "version"}

// Parse parses command-line arguments (without the program name).
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlags...)

	args := Args{
		ConfigPath: p.Flag("config"),
		URL:        p.Flag("url"),
		Verbose:    p.BoolFlag("verbose") || p.BoolFlag("v"),
		JSON:       p.BoolFlag("json"),
		Yes:        p.BoolFlag("yes") || p.BoolFlag("y"),
		HTML:       p.BoolFlag("html"),
		Out:        p.Flag("out"),
		Limit:      DefaultHistoryLimit,
	}

	if p.BoolFlag("help") || p.BoolFlag("h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}

	name := strings.ToLower(p.Positional(0))
	switch name {
	case "", "tui":
		return CmdTUI, args, nil

	case "list", "ls":
		return CmdList, args, nil

	case "signup", "unregister":
		cmd := CmdSignup
		if name == "unregister" {
			cmd = CmdUnregister
		}
		if p.PositionalCount() != 3 {
			return cmd, args, NewUsageError(fmt.Sprintf("%s needs ACTIVITY and EMAIL", name),
				fmt.Sprintf(`rosterboard %s "Chess Club" student@mergington.edu`, name))
		}
		args.Activity = p.Positional(1)
		args.Email = p.Positional(2)
		return cmd, args, nil

	case "history":
		if p.HasFlag("limit") {
			limit, err := ParseIntWithValidation(p.Flag("limit"), "--limit")
			if err != nil {
				return CmdHistory, args, NewUsageError(err.Error(), "rosterboard history --limit 50")
			}
			args.Limit = limit
		}
		return CmdHistory, args, nil

	case "config":
		args.Subcommand = strings.ToLower(p.Positional(1))
		if args.Subcommand == "" {
			args.Subcommand = "show"
		}
		if args.Subcommand != "show" && args.Subcommand != "path" {
			return CmdConfig, args, NewUsageError("unknown config subcommand "+args.Subcommand, "rosterboard config show")
		}
		return CmdConfig, args, nil

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil
	}

	example := "rosterboard help"
	if suggestion := SuggestCommand(name); suggestion != "" {
		example = "rosterboard " + suggestion
	}
	return CmdHelp, args, NewUsageError("unknown command "+name, example)
}
