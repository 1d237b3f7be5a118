// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rosterboard/internal/markup"
	"github.com/jeranaias/rosterboard/internal/ui/styles"
	"github.com/jeranaias/rosterboard/internal/util"
)

// RemoveGlyph marks a participant's removal control.
const RemoveGlyph = "✖"

// CardLayout is the result of RenderCards.
type CardLayout struct {
	View string
	// ControlLines holds, for each control in order, the view line it is
	// drawn on.
	ControlLines []int
}

// RenderCards draws cards one below the other at width columns. focused
// indexes the removal controls across all cards in order; -1 focuses none.
//
// Server text is printed raw, never as markup: it is sanitized for the
// terminal and truncated to fit.
func RenderCards(theme *styles.Theme, cards []markup.Card, focused, width int) CardLayout {
	var (
		layout CardLayout
		blocks []string
		line   int
		index  int
	)

	for _, card := range cards {
		cardFocused := focused >= index && focused < index+len(card.Controls)
		block, offsets := renderCard(theme, card, focused-index, cardFocused, width)
		for _, off := range offsets {
			layout.ControlLines = append(layout.ControlLines, line+off)
		}
		index += len(card.Controls)
		line += lipgloss.Height(block)
		blocks = append(blocks, block)
	}

	layout.View = strings.Join(blocks, "\n")
	return layout
}

func renderCard(theme *styles.Theme, card markup.Card, focused int, cardFocused bool, width int) (string, []int) {
	style := theme.Card
	if cardFocused {
		style = theme.CardFocused
	}
	// Border and padding take four columns.
	inner := width - 4
	if inner < 16 {
		inner = 16
	}

	var lines []string
	lines = append(lines, theme.CardTitle.Render(fit(card.Name, inner)))

	if card.Description != "" {
		desc := lipgloss.NewStyle().Width(inner).Render(util.Sanitize(card.Description))
		lines = append(lines, strings.Split(theme.CardText.Render(desc), "\n")...)
	}
	lines = append(lines, theme.CardLabel.Render("Schedule:")+" "+theme.CardText.Render(fit(card.Schedule, inner-10)))

	spots := theme.SpotsOpen
	if card.SpotsLeft <= 0 {
		spots = theme.SpotsLow
	}
	lines = append(lines, theme.CardLabel.Render("Availability:")+" "+spots.Render(strconv.Itoa(card.SpotsLeft)+" spots left"))
	lines = append(lines, theme.CardLabel.Render("Participants ("+strconv.Itoa(card.Count)+")"))

	var offsets []int
	if len(card.Controls) == 0 {
		lines = append(lines, theme.Placeholder.Render(markup.NoParticipantsText))
	}
	for i, c := range card.Controls {
		// +1 for the top border
		offsets = append(offsets, len(lines)+1)

		email := fit(c.Email, inner-4)
		if i == focused {
			lines = append(lines, theme.ParticipantFocused.Render("› "+email)+" "+theme.RemoveControl.Render(RemoveGlyph))
		} else {
			lines = append(lines, theme.Participant.Render("  "+email)+" "+theme.RemoveControl.Render(RemoveGlyph))
		}
	}

	return style.Width(width - 2).Render(strings.Join(lines, "\n")), offsets
}

func fit(s string, width int) string {
	return util.TruncateWidth(util.Sanitize(s), width)
}
