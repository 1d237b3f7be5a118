// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"strconv"
	"strings"

	"github.com/jeranaias/rosterboard/internal/roster"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// PlaceholderLabel is the "no selection" entry that heads the selector.
	PlaceholderLabel = "-- Select an activity --"

	// NoParticipantsText replaces the participant list of an empty activity.
	NoParticipantsText = "No participants yet."

	// FailureText is shown in place of the list when a fetch fails.
	FailureText = "Failed to load activities. Please try again later."

	// FailureHTML is FailureText as a list fragment.
	FailureHTML = "<p>" + FailureText + "</p>"
)

// =============================================================================
// VIEW TYPES
// =============================================================================

// Control is a participant removal control. Activity and Email are the raw
// values recorded on the control; the markup carries them escaped.
type Control struct {
	Activity string
	Email    string
}

// Card is the view of one activity.
type Card struct {
	Name        string
	Description string
	Schedule    string
	SpotsLeft   int
	Count       int
	Controls    []Control

	// Markup is the escaped HTML view block.
	Markup string
}

// Option is one selector entry.
type Option struct {
	Value string
	Label string
}

// IsPlaceholder reports whether the option is the "no selection" entry.
func (o Option) IsPlaceholder() bool {
	return o.Value == ""
}

// Output is everything a render produces.
type Output struct {
	Cards   []Card
	Options []Option
}

// ListHTML concatenates the card markup in order.
func (o Output) ListHTML() string {
	var sb strings.Builder
	for _, c := range o.Cards {
		sb.WriteString(c.Markup)
	}
	return sb.String()
}

// SelectHTML renders the selector options.
func (o Output) SelectHTML() string {
	return OptionsHTML(o.Options)
}

// OptionsHTML renders option elements for the given options.
func OptionsHTML(options []Option) string {
	var sb strings.Builder
	for _, opt := range options {
		sb.WriteString(`<option value="`)
		sb.WriteString(Escape(opt.Value))
		sb.WriteString(`">`)
		sb.WriteString(Escape(opt.Label))
		sb.WriteString("</option>")
	}
	return sb.String()
}

// =============================================================================
// RENDERING
// =============================================================================

// Render builds one card per activity and the selector options, both in
// snapshot order. A nil snapshot yields no cards and only the placeholder.
func Render(snap *roster.Snapshot) Output {
	activities := snap.Activities()

	out := Output{
		Cards:   make([]Card, 0, len(activities)),
		Options: make([]Option, 0, len(activities)+1),
	}
	out.Options = append(out.Options, Option{Value: "", Label: PlaceholderLabel})

	for _, a := range activities {
		out.Cards = append(out.Cards, renderCard(a))
		out.Options = append(out.Options, Option{Value: a.Name, Label: a.Name})
	}
	return out
}

func renderCard(a roster.Activity) Card {
	card := Card{
		Name:        a.Name,
		Description: a.Description,
		Schedule:    a.Schedule,
		SpotsLeft:   a.SpotsLeft(),
		Count:       a.Count(),
		Controls:    make([]Control, 0, len(a.Participants)),
	}
	for _, p := range a.Participants {
		card.Controls = append(card.Controls, Control{Activity: a.Name, Email: p})
	}

	var sb strings.Builder
	sb.WriteString(`<div class="activity-card">`)
	sb.WriteString("<h4>" + Escape(a.Name) + "</h4>")
	sb.WriteString("<p>" + Escape(a.Description) + "</p>")
	sb.WriteString("<p><strong>Schedule:</strong> " + Escape(a.Schedule) + "</p>")
	sb.WriteString("<p><strong>Availability:</strong> " + strconv.Itoa(card.SpotsLeft) + " spots left</p>")
	sb.WriteString(`<div class="participants">`)
	sb.WriteString("<h5>Participants (" + strconv.Itoa(card.Count) + ")</h5>")
	sb.WriteString(participantsHTML(card.Controls))
	sb.WriteString("</div></div>")

	card.Markup = sb.String()
	return card
}

func participantsHTML(controls []Control) string {
	if len(controls) == 0 {
		return `<p class="info">` + NoParticipantsText + "</p>"
	}

	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, c := range controls {
		email := Escape(c.Email)
		sb.WriteString("<li>")
		sb.WriteString(`<span class="participant-email">` + email + "</span>")
		sb.WriteString(`<button class="delete-participant" data-activity="` + Escape(c.Activity) +
			`" data-email="` + email + `" aria-label="Remove participant">✖</button>`)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}
