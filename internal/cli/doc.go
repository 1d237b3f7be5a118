// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the headless commands of
// rosterboard.
//
// Every command that talks to the service runs the same app.App the
// interactive board uses, inside a Bubble Tea program with no renderer and
// no input (see RunFlow). The command prints the notification the board
// would have shown; an error notification fails the command.
//
// # Commands
//
//   - list: load the roster once; text, --json or --html (optionally --out)
//   - signup ACTIVITY EMAIL
//   - unregister ACTIVITY EMAIL [--yes]
//   - history [--limit N] [--json]: recent entries of the mutation journal
//   - config [show|path]
//   - version
package cli
