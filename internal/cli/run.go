// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rosterboard/internal/app"
	"github.com/jeranaias/rosterboard/internal/mutation"
	"github.com/jeranaias/rosterboard/internal/refresh"
)

// =============================================================================
// HEADLESS RUNNER
// =============================================================================

// trackedMsg and trackedBatch carry the results of commands started by a
// flow back to its model.
type (
	trackedMsg   struct{ msg tea.Msg }
	trackedBatch struct{ cmds []tea.Cmd }
)

// flowModel drives an app without a renderer or input. It counts the
// commands it has in flight and quits once none are left.
type flowModel struct {
	app     *app.App
	start   tea.Cmd
	pending int
	cause   error
}

func (m *flowModel) Init() tea.Cmd {
	return m.track(m.start)
}

func (m *flowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var next tea.Cmd

	switch msg := msg.(type) {
	case trackedBatch:
		m.pending--
		cmds := make([]tea.Cmd, 0, len(msg.cmds))
		for _, c := range msg.cmds {
			cmds = append(cmds, m.track(c))
		}
		next = tea.Batch(cmds...)

	case trackedMsg:
		m.pending--
		if msg.msg != nil {
			if err := requestErr(msg.msg); err != nil {
				m.cause = err
			}
			next = m.track(m.app.Update(msg.msg))
		}

	default:
		return m, nil
	}

	if m.pending == 0 {
		return m, tea.Quit
	}
	return m, next
}

func (m *flowModel) View() string { return "" }

// track wraps cmd so its result comes back through Update. It must only be
// called from the event loop.
func (m *flowModel) track(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	m.pending++
	return func() tea.Msg {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			return trackedBatch{cmds: batch}
		}
		return trackedMsg{msg: msg}
	}
}

// requestErr extracts the error from a request result, if msg is one.
func requestErr(msg tea.Msg) error {
	switch msg := msg.(type) {
	case refresh.RefreshedMsg:
		return msg.Err
	case mutation.SignupResultMsg:
		return msg.Err
	case mutation.UnregisterResultMsg:
		return msg.Err
	}
	return nil
}

// FlowResult is what a headless flow ran into.
type FlowResult struct {
	// Cause is the last request error the flow handled. The app turns it
	// into a notification; commands keep it for the exit code.
	Cause error
}

// RunFlow runs start against a inside a Bubble Tea program with no
// renderer and no input, returning once everything the flow set off has
// been handled.
func RunFlow(ctx context.Context, a *app.App, start tea.Cmd) (FlowResult, error) {
	if start == nil {
		return FlowResult{}, nil
	}

	model := &flowModel{app: a, start: start}
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithoutRenderer(),
	)
	if _, err := p.Run(); err != nil {
		return FlowResult{}, fmt.Errorf("run flow: %w", err)
	}
	return FlowResult{Cause: model.cause}, nil
}

// noSchedule keeps notifications up for the rest of a headless run.
func noSchedule(time.Duration, func(time.Time) tea.Msg) tea.Cmd {
	return nil
}
