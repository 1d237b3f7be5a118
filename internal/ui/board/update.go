// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rosterboard/internal/notify"
	"github.com/jeranaias/rosterboard/internal/ui/components"
	"github.com/jeranaias/rosterboard/internal/ui/styles"
)

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ConfigReloadedMsg:
		cmds = append(cmds, m.applyConfig(msg))

	default:
		cmds = append(cmds, m.app.Update(msg))
		if m.focus == FocusForm && m.field == FieldEmail {
			var cmd tea.Cmd
			m.email, cmd = m.email.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.syncForm()
	m.clampControl()
	m.syncViewport()
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}

	// The dialog is modal.
	if m.dialog.IsVisible() {
		cmd, _ := m.dialog.Update(msg)
		return cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
			m.showHelp = false
		}
		return nil
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	if key.Matches(msg, m.keys.SwitchFocus) {
		m.toggleFocus()
		return nil
	}

	if m.focus == FocusForm {
		return m.handleFormKey(msg)
	}
	return m.handleRosterKey(msg)
}

func (m *Model) toggleFocus() {
	if m.focus == FocusForm {
		m.focus = FocusRoster
		m.email.Blur()
		return
	}
	m.focus = FocusForm
	if m.field == FieldEmail {
		m.email.Focus()
	}
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.app.Document().Form.Email = m.email.Value()
		return m.app.Signup()

	case msg.Type == tea.KeyUp || msg.Type == tea.KeyDown:
		if m.field == FieldSelector {
			m.field = FieldEmail
			return m.email.Focus()
		}
		m.field = FieldSelector
		m.email.Blur()
		return nil
	}

	if m.field == FieldSelector {
		switch {
		case key.Matches(msg, m.keys.PrevOption):
			m.app.Document().Selector.Step(-1)
		case key.Matches(msg, m.keys.NextOption):
			m.app.Document().Selector.Step(1)
		}
		return nil
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	m.app.Document().Form.Email = m.email.Value()
	return cmd
}

func (m *Model) handleRosterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.control > 0 {
			m.control--
		}

	case key.Matches(msg, m.keys.Down):
		if m.control < len(m.visibleControls())-1 {
			m.control++
		}

	case key.Matches(msg, m.keys.Unregister):
		if control, ok := m.FocusedControl(); ok {
			return m.app.Unregister(control)
		}

	case key.Matches(msg, m.keys.Copy):
		control, ok := m.FocusedControl()
		if !ok {
			return nil
		}
		if err := m.clipboard(control.Email); err != nil {
			m.logger.Printf("CLIPBOARD_FAILED | error=%v", err)
			return m.app.Notify("Clipboard is not available.", notify.KindError)
		}
		return m.app.Notify("Copied "+control.Email, notify.KindSuccess)

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m.filter.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m.app.Refresh()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return nil
}

// handleFilterKey edits the filter. Enter keeps it, Esc clears it.
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.filtering = false
		m.filter.Blur()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.filtering = false
		m.filter.Reset()
		m.filter.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.control = 0
	return cmd
}

// =============================================================================
// STATE SYNC
// =============================================================================

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.dialog.SetSize(width, height)
	m.email.Width = min(40, max(10, width-24))
}

func (m *Model) applyConfig(msg ConfigReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Printf("CONFIG_RELOAD_FAILED | error=%v", msg.Err)
		return m.app.Notify("Configuration reload failed.", notify.KindError)
	}
	if msg.Config == nil {
		return nil
	}

	theme := styles.NewTheme(msg.Config.UI.Theme)
	theme.SetSize(m.width, m.height)
	m.theme = theme
	m.dialog.SetTheme(theme)
	m.spinner.Style = theme.Spinner
	m.logger.Printf("CONFIG_RELOADED | theme=%s", theme.Mode)
	return nil
}

// syncForm clears the email input after the document's form was reset.
func (m *Model) syncForm() {
	form := m.app.Document().Form
	if form.Resets != m.lastResets {
		m.lastResets = form.Resets
		m.email.SetValue("")
	}
}

func (m *Model) clampControl() {
	n := len(m.visibleControls())
	if m.control >= n {
		m.control = n - 1
	}
	if m.control < 0 {
		m.control = 0
	}
}

// syncViewport re-renders the cards into the viewport and keeps the
// focused control on screen.
func (m *Model) syncViewport() {
	focused := -1
	if m.focus == FocusRoster {
		focused = m.control
	}

	layout := components.RenderCards(m.theme, m.visibleCards(), focused, m.theme.ContentWidth())
	m.viewport.Width = m.theme.ContentWidth()
	m.viewport.Height = m.rosterHeight()
	m.viewport.SetContent(layout.View)

	if focused < 0 || focused >= len(layout.ControlLines) {
		return
	}
	line := layout.ControlLines[focused]
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}
