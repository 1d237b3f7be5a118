// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rosterboard/internal/ui/components"
	"github.com/jeranaias/rosterboard/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the board.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.dialog.IsVisible() {
		return m.dialog.View()
	}
	if m.showHelp {
		help := components.RenderHelp(m.theme.ContentWidth(), m.theme.IsDark)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, help)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderForm(),
		m.renderRoster(),
	)

	// The toast takes the line above the status bar when shown.
	if toast := components.RenderToast(m.theme, m.app.Document().Message, m.width/2); toast != "" {
		bodyHeight := m.height - 1 - lipgloss.Height(toast)
		body = lipgloss.Place(m.width, max(bodyHeight, 0), lipgloss.Left, lipgloss.Top, body)
		body = lipgloss.JoinVertical(lipgloss.Left, body, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toast))
	} else {
		body = lipgloss.Place(m.width, max(m.height-1, 0), lipgloss.Left, lipgloss.Top, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Activities")
	subtitle := ""
	if m.serverURL != "" {
		subtitle = m.theme.HeaderSubtitle.Render(util.TruncateWidth(m.serverURL, max(m.width-20, 10)))
	}
	return m.theme.Header.Render(lipgloss.JoinHorizontal(lipgloss.Center, title, " ", subtitle))
}

func (m Model) renderForm() string {
	doc := m.app.Document()

	label := ""
	if opts := doc.Selector.Options; len(opts) > 0 {
		label = opts[doc.Selector.Index()].Label
	}
	selector := m.theme.Selector.Render("‹ " + util.TruncateWidth(util.Sanitize(label), 40) + " ›")
	if doc.Selector.Selected == "" {
		selector = m.theme.SelectorEmpty.Render("‹ " + label + " ›")
	}

	activityLabel := "  Activity "
	emailLabel := "  Email    "
	if m.focus == FocusForm {
		if m.field == FieldSelector {
			activityLabel = "› Activity "
		} else {
			emailLabel = "› Email    "
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.FormLabel.Render(activityLabel)+selector,
		m.theme.FormLabel.Render(emailLabel)+m.email.View(),
	)

	style := m.theme.Form
	if m.focus == FocusForm {
		style = m.theme.FormFocused
	}
	return style.Width(m.theme.ContentWidth()).Render(content)
}

func (m Model) renderRoster() string {
	list := m.app.Document().List

	var b strings.Builder
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	switch {
	case list.Loading && len(list.Cards) == 0:
		b.WriteString(m.spinner.View() + " Loading activities...")
	case list.Failed:
		b.WriteString(m.theme.Failure.Render(list.FailureText))
	default:
		b.WriteString(m.viewport.View())
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	bindings := m.keys.FormHelp()
	if m.focus == FocusRoster {
		bindings = m.keys.RosterHelp()
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, renderBinding(m, b))
	}
	return m.theme.StatusBar.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

func renderBinding(m Model, b key.Binding) string {
	h := b.Help()
	return m.theme.ShortcutKey.Render(h.Key) + " " + m.theme.ShortcutDesc.Render(h.Desc)
}

// rosterHeight is the number of lines left for the cards.
func (m Model) rosterHeight() int {
	used := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderForm()) + 1
	if m.filtering || m.filter.Value() != "" {
		used++
	}
	if m.app.Document().Message.Visible {
		used += 3
	}
	if h := m.height - used; h > 3 {
		return h
	}
	return 3
}
