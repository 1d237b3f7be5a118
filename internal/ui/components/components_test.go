// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rosterboard/internal/confirm"
	"github.com/jeranaias/rosterboard/internal/markup"
	"github.com/jeranaias/rosterboard/internal/page"
	"github.com/jeranaias/rosterboard/internal/roster"
	"github.com/jeranaias/rosterboard/internal/ui/styles"
)

var theme = styles.NewTheme("dark")

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// CONFIRM DIALOG
// =============================================================================

func TestConfirmDialog_Answers(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		accept bool
	}{
		{"y accepts", []string{"y"}, true},
		{"n declines", []string{"n"}, false},
		{"esc declines", []string{"esc"}, false},
		{"enter defaults to cancel", []string{"enter"}, false},
		{"tab then enter accepts", []string{"tab", "enter"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewConfirmDialog(theme)
			req := confirm.Request{Activity: "Chess Club", Email: "a@x.com"}
			assert.Nil(t, d.Confirm(req))
			require.True(t, d.IsVisible())

			var cmd tea.Cmd
			for _, k := range tc.keys {
				var handled bool
				cmd, handled = d.Update(key(k))
				assert.True(t, handled)
			}
			require.NotNil(t, cmd)

			answer := cmd().(confirm.AnswerMsg)
			assert.Equal(t, tc.accept, answer.Accepted)
			assert.Equal(t, req, answer.Request)
			assert.False(t, d.IsVisible())
		})
	}
}

func TestConfirmDialog_QueuesRequests(t *testing.T) {
	d := NewConfirmDialog(theme)
	d.Confirm(confirm.Request{Activity: "A", Email: "1@x.com"})
	d.Confirm(confirm.Request{Activity: "A", Email: "2@x.com"})
	assert.Equal(t, 2, d.Pending())
	assert.Contains(t, d.View(), "1 more waiting")

	cmd, _ := d.Update(key("y"))
	assert.Equal(t, "1@x.com", cmd().(confirm.AnswerMsg).Request.Email)

	cur, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, "2@x.com", cur.Email)
}

func TestConfirmDialog_HiddenIgnoresKeys(t *testing.T) {
	d := NewConfirmDialog(theme)
	cmd, handled := d.Update(key("y"))
	assert.Nil(t, cmd)
	assert.False(t, handled)
	assert.Equal(t, "", d.View())
}

func TestConfirmDialog_ViewShowsPrompt(t *testing.T) {
	d := NewConfirmDialog(theme)
	d.Confirm(confirm.Request{Activity: "Chess Club", Email: "a@x.com"})
	assert.Contains(t, ansi.Strip(d.View()), "Unregister a@x.com from Chess Club?")
}

// =============================================================================
// TOAST
// =============================================================================

func TestRenderToast(t *testing.T) {
	assert.Equal(t, "", RenderToast(theme, page.Message{Text: "x", Visible: false}, 80))

	got := ansi.Strip(RenderToast(theme, page.Message{Text: "Already signed up", Kind: "error", Visible: true}, 80))
	assert.Contains(t, got, "[X] Already signed up")

	got = ansi.Strip(RenderToast(theme, page.Message{Text: "Signed up", Kind: "success", Visible: true}, 80))
	assert.Contains(t, got, "[OK] Signed up")

	got = ansi.Strip(RenderToast(theme, page.Message{Text: "evil\x1b[2Jtext", Kind: "error", Visible: true}, 80))
	assert.NotContains(t, got, "\x1b")
}

// =============================================================================
// CARDS
// =============================================================================

func sampleCards() []markup.Card {
	snap := roster.NewSnapshot(
		roster.Activity{Name: "Chess Club", Description: "Strategy", Schedule: "Fridays", MaxParticipants: 12,
			Participants: []string{"michael@mergington.edu", "daniel@mergington.edu"}},
		roster.Activity{Name: "Art", Description: "Paint", Schedule: "Mondays", MaxParticipants: 1,
			Participants: []string{"a@x.com", "b@x.com"}},
		roster.Activity{Name: "Empty", Description: "", Schedule: "Never", MaxParticipants: 5},
	)
	return markup.Render(snap).Cards
}

func TestRenderCards_ControlLines(t *testing.T) {
	cards := sampleCards()
	layout := RenderCards(theme, cards, 2, 60)

	require.Len(t, layout.ControlLines, 4)
	lines := strings.Split(ansi.Strip(layout.View), "\n")

	emails := []string{"michael@mergington.edu", "daniel@mergington.edu", "a@x.com", "b@x.com"}
	for i, email := range emails {
		line := lines[layout.ControlLines[i]]
		assert.Contains(t, line, email, "control %d", i)
		assert.Contains(t, line, RemoveGlyph)
	}
	assert.Contains(t, lines[layout.ControlLines[2]], "›", "focused control is marked")
}

func TestRenderCards_Content(t *testing.T) {
	view := ansi.Strip(RenderCards(theme, sampleCards(), -1, 60).View)

	assert.Contains(t, view, "Participants (2)")
	assert.Contains(t, view, "10 spots left")
	assert.Contains(t, view, "-1 spots left")
	assert.Contains(t, view, markup.NoParticipantsText)
	assert.NotContains(t, view, "›")
}

func TestRenderCards_TruncatesToWidth(t *testing.T) {
	cards := markup.Render(roster.NewSnapshot(roster.Activity{
		Name:         strings.Repeat("Very Long Activity Name ", 10),
		Schedule:     "s",
		Participants: []string{},
	})).Cards

	for _, line := range strings.Split(ansi.Strip(RenderCards(theme, cards, -1, 40).View), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40)
	}
}

// =============================================================================
// HELP AND HIGHLIGHT
// =============================================================================

func TestRenderHelp(t *testing.T) {
	out := ansi.Strip(RenderHelp(80, true))
	assert.Contains(t, out, "unregister the selected participant")
}

func TestHighlight(t *testing.T) {
	src := `<div class="activity-card"><h4>Chess</h4></div>`
	out := Highlight(src, "html")
	assert.Contains(t, ansi.Strip(out), "activity-card")
}
