// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rosterboard/internal/confirm"
	"github.com/jeranaias/rosterboard/internal/ui/styles"
	"github.com/jeranaias/rosterboard/internal/util"
)

// =============================================================================
// CONFIRM DIALOG
// =============================================================================

// Button options
const (
	ButtonConfirm = 0
	ButtonCancel  = 1
	ButtonCount   = 2
)

// ConfirmDialog is a modal yes/no prompt. It satisfies confirm.Confirmer:
// Confirm queues the request and the answer is produced by key presses.
//
// It must only be used from the event loop.
type ConfirmDialog struct {
	queue    []confirm.Request
	selected int
	width    int
	height   int

	theme *styles.Theme
}

// NewConfirmDialog creates a hidden dialog.
func NewConfirmDialog(theme *styles.Theme) *ConfirmDialog {
	return &ConfirmDialog{theme: theme, selected: ButtonCancel}
}

// Confirm implements confirm.Confirmer. The dialog shows the first queued
// request; later requests wait their turn.
func (d *ConfirmDialog) Confirm(req confirm.Request) tea.Cmd {
	if len(d.queue) == 0 {
		d.selected = ButtonCancel
	}
	d.queue = append(d.queue, req)
	return nil
}

// SetTheme swaps the styles used by View.
func (d *ConfirmDialog) SetTheme(theme *styles.Theme) {
	d.theme = theme
}

// IsVisible returns whether a request is awaiting an answer.
func (d *ConfirmDialog) IsVisible() bool {
	return len(d.queue) > 0
}

// Pending returns the number of queued requests, including the shown one.
func (d *ConfirmDialog) Pending() int {
	return len(d.queue)
}

// Current returns the request on screen.
func (d *ConfirmDialog) Current() (confirm.Request, bool) {
	if len(d.queue) == 0 {
		return confirm.Request{}, false
	}
	return d.queue[0], true
}

// SetSize updates the dialog dimensions.
func (d *ConfirmDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Update handles key events while the dialog is visible. The bool reports
// whether the key was consumed.
func (d *ConfirmDialog) Update(msg tea.Msg) (tea.Cmd, bool) {
	if !d.IsVisible() {
		return nil, false
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}

	switch key.String() {
	case "left", "h", "right", "l", "tab", "shift+tab":
		d.selected = (d.selected + 1) % ButtonCount
		return nil, true

	case "enter", " ":
		return d.answer(d.selected == ButtonConfirm), true

	case "y", "Y":
		return d.answer(true), true

	case "n", "N", "esc", "q":
		return d.answer(false), true
	}

	// Everything else is swallowed while the dialog is modal.
	return nil, true
}

func (d *ConfirmDialog) answer(accepted bool) tea.Cmd {
	req := d.queue[0]
	d.queue = d.queue[1:]
	d.selected = ButtonCancel
	return confirm.Answer(req, accepted, nil)
}

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the dialog centered in its area, or "" when hidden.
func (d *ConfirmDialog) View() string {
	req, ok := d.Current()
	if !ok {
		return ""
	}

	boxWidth := 56
	if d.width > 0 && d.width < boxWidth+4 {
		boxWidth = d.width - 4
	}
	if boxWidth < 30 {
		boxWidth = 30
	}

	var content strings.Builder
	content.WriteString(d.theme.DialogTitle.Render("Remove participant"))
	content.WriteString("\n\n")
	content.WriteString(util.TruncateWidth(util.Sanitize(req.Prompt()), boxWidth-6))
	content.WriteString("\n\n")
	content.WriteString(d.renderButtons())

	hint := "y=Yes  n=No  Tab=Switch"
	if n := len(d.queue) - 1; n > 0 {
		hint += "  (" + strconv.Itoa(n) + " more waiting)"
	}
	content.WriteString("\n\n")
	content.WriteString(d.theme.DialogHint.Render(hint))

	box := d.theme.DialogBox.Width(boxWidth).Render(content.String())
	if d.width > 0 && d.height > 0 {
		return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (d *ConfirmDialog) renderButtons() string {
	yes, no := d.theme.Button, d.theme.Button
	if d.selected == ButtonConfirm {
		yes = d.theme.ButtonActive.Background(styles.Rose)
	} else {
		no = d.theme.ButtonActive
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, yes.Render("Unregister"), no.Render("Cancel"))
}
