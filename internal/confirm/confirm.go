// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package confirm provides the pluggable yes/no capability that gates
// participant removal.
//
// A Confirmer never blocks the event loop: Confirm returns a command (or
// nil, for implementations that answer later through their own UI) and the
// answer arrives as an AnswerMsg.
package confirm

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when an interactive prompt is needed but stdin
// is not a terminal.
var ErrNotTerminal = errors.New("confirmation required but stdin is not a terminal; use --yes")

// =============================================================================
// REQUEST / ANSWER
// =============================================================================

// Request names the participant and activity a removal would affect.
type Request struct {
	Activity string
	Email    string
}

// Prompt is the question shown to the user.
func (r Request) Prompt() string {
	return fmt.Sprintf("Unregister %s from %s?", r.Email, r.Activity)
}

// AnswerMsg carries the user's decision.
type AnswerMsg struct {
	Request  Request
	Accepted bool
	Err      error
}

// Confirmer asks the user to approve a Request.
type Confirmer interface {
	Confirm(req Request) tea.Cmd
}

// Answer returns a command that yields a fixed answer for req.
func Answer(req Request, accepted bool, err error) tea.Cmd {
	return func() tea.Msg {
		return AnswerMsg{Request: req, Accepted: accepted, Err: err}
	}
}

// =============================================================================
// SCRIPTED
// =============================================================================

// Always answers every request the same way. Always(true) backs --yes.
type Always bool

// Confirm implements Confirmer.
func (a Always) Confirm(req Request) tea.Cmd {
	return Answer(req, bool(a), nil)
}

// Func adapts a blocking decision function. It runs off the event loop.
type Func func(req Request) (bool, error)

// Confirm implements Confirmer.
func (f Func) Confirm(req Request) tea.Cmd {
	return func() tea.Msg {
		ok, err := f(req)
		return AnswerMsg{Request: req, Accepted: ok && err == nil, Err: err}
	}
}

// =============================================================================
// INTERACTIVE PROMPT
// =============================================================================

// Prompt asks on the controlling terminal with a line editor.
type Prompt struct {
	// Ask reads one answer line. Defaults to a liner prompt.
	Ask func(prompt string) (string, error)
	// IsTerminal reports whether stdin can be prompted. Defaults to x/term.
	IsTerminal func() bool
}

// NewPrompt returns a prompt bound to stdin.
func NewPrompt() *Prompt {
	return &Prompt{Ask: linerAsk, IsTerminal: stdinIsTerminal}
}

// Confirm implements Confirmer.
func (p *Prompt) Confirm(req Request) tea.Cmd {
	return func() tea.Msg {
		ok, err := p.decide(req)
		return AnswerMsg{Request: req, Accepted: ok, Err: err}
	}
}

func (p *Prompt) decide(req Request) (bool, error) {
	isTerminal := p.IsTerminal
	if isTerminal == nil {
		isTerminal = stdinIsTerminal
	}
	if !isTerminal() {
		return false, ErrNotTerminal
	}

	ask := p.Ask
	if ask == nil {
		ask = linerAsk
	}
	input, err := ask(req.Prompt() + " [y/N]: ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes", nil
}

func linerAsk(prompt string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	return line.Prompt(prompt)
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
