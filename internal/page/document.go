// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"github.com/jeranaias/rosterboard/internal/markup"
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Document holds the list, selector, form and message handles.
type Document struct {
	List     List
	Selector Selector
	Form     Form
	Message  Message
}

// New returns a document in its page-load state: the list shows a loading
// placeholder and the selector only has the "no selection" entry.
func New() *Document {
	return &Document{
		List: List{Loading: true},
		Selector: Selector{
			Options: []markup.Option{{Value: "", Label: markup.PlaceholderLabel}},
		},
		Message: Message{Visible: false},
	}
}

// =============================================================================
// LIST
// =============================================================================

// List is the activity list area.
type List struct {
	Cards   []markup.Card
	HTML    string
	Loading bool

	// Failed is set while the list shows the load failure message.
	Failed      bool
	FailureText string
}

// ShowRoster replaces the list contents with freshly rendered cards.
func (l *List) ShowRoster(out markup.Output) {
	l.Cards = out.Cards
	l.HTML = out.ListHTML()
	l.Loading = false
	l.Failed = false
	l.FailureText = ""
}

// ShowFailure clears the list down to a single failure message.
func (l *List) ShowFailure() {
	l.Cards = nil
	l.HTML = markup.FailureHTML
	l.Loading = false
	l.Failed = true
	l.FailureText = markup.FailureText
}

// Controls returns every removal control in list order.
func (l *List) Controls() []markup.Control {
	var controls []markup.Control
	for _, c := range l.Cards {
		controls = append(controls, c.Controls...)
	}
	return controls
}

// =============================================================================
// SELECTOR
// =============================================================================

// Selector is the activity drop-down.
type Selector struct {
	Options  []markup.Option
	Selected string
}

// Rebuild clears the options and repopulates them from options. A selection
// that no longer exists falls back to the placeholder.
func (s *Selector) Rebuild(options []markup.Option) {
	s.Options = append([]markup.Option(nil), options...)
	if !s.Has(s.Selected) {
		s.Selected = ""
	}
}

// Has reports whether value is one of the options.
func (s *Selector) Has(value string) bool {
	for _, opt := range s.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Index returns the position of the selected option, or 0.
func (s *Selector) Index() int {
	for i, opt := range s.Options {
		if opt.Value == s.Selected {
			return i
		}
	}
	return 0
}

// Step moves the selection by delta, wrapping around.
func (s *Selector) Step(delta int) {
	n := len(s.Options)
	if n == 0 {
		return
	}
	i := ((s.Index()+delta)%n + n) % n
	s.Selected = s.Options[i].Value
}

// HTML renders the select element's options.
func (s *Selector) HTML() string {
	return markup.OptionsHTML(s.Options)
}

// =============================================================================
// FORM
// =============================================================================

// Form is the signup form. The chosen activity lives in the Selector.
type Form struct {
	Email string

	// Resets counts resets so views can clear their own inputs.
	Resets int
}

// ResetForm clears the email field and returns the selector to the
// placeholder entry.
func (d *Document) ResetForm() {
	d.Form.Email = ""
	d.Form.Resets++
	d.Selector.Selected = ""
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is the single status message box.
type Message struct {
	Text    string
	Kind    string
	Visible bool

	// Token identifies the notification currently shown.
	Token string
}
