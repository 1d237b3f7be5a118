// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rosterboard/internal/notify"
	"github.com/jeranaias/rosterboard/internal/page"
	"github.com/jeranaias/rosterboard/internal/ui/styles"
	"github.com/jeranaias/rosterboard/internal/util"
)

// RenderToast draws the message box, or "" when it is hidden. The text is
// sanitized and limited to maxWidth columns.
func RenderToast(theme *styles.Theme, msg page.Message, maxWidth int) string {
	if !msg.Visible || msg.Text == "" {
		return ""
	}

	style := theme.ToastError
	indicator := styles.StatusIndicators.Error
	if msg.Kind == string(notify.KindSuccess) {
		style = theme.ToastSuccess
		indicator = styles.StatusIndicators.Success
	}

	// Border and padding take four columns.
	textWidth := maxWidth - 4
	if textWidth < 10 {
		textWidth = 10
	}
	text := util.TruncateWidth(indicator+" "+util.Sanitize(msg.Text), textWidth)
	return style.Render(text)
}

// PlaceToast positions a rendered toast at the bottom-right of an area.
func PlaceToast(toast string, width, height int) string {
	if toast == "" {
		return ""
	}
	return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, toast)
}
