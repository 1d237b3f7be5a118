// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rosterboard/internal/api"
	"github.com/jeranaias/rosterboard/internal/api/apitest"
	"github.com/jeranaias/rosterboard/internal/confirm"
	"github.com/jeranaias/rosterboard/internal/markup"
	"github.com/jeranaias/rosterboard/internal/notify"
)

// =============================================================================
// HARNESS
// =============================================================================

type timer struct {
	delay time.Duration
	msg   tea.Msg
}

// clock collects dismissal timers instead of waiting on them.
type clock struct{ timers []timer }

func (c *clock) schedule(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	c.timers = append(c.timers, timer{delay: d, msg: fn(time.Time{})})
	return nil
}

type harness struct {
	srv   *apitest.Server
	app   *App
	clock *clock
}

func newHarness(t *testing.T, confirmer confirm.Confirmer) *harness {
	t.Helper()
	srv := apitest.Default()
	t.Cleanup(srv.Close)

	c := &clock{}
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second, RequestsPerSecond: 1000, Burst: 100})
	return &harness{
		srv:   srv,
		clock: c,
		app:   New(Options{Client: client, Confirmer: confirmer, Schedule: c.schedule}),
	}
}

// drive runs cmd to completion, feeding every message back into the app
// one at a time, the way the event loop would.
func (h *harness) drive(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg != nil {
			queue = append(queue, h.app.Update(msg))
		}
	}
}

func (h *harness) card(name string) markup.Card {
	for _, c := range h.app.Document().List.Cards {
		if c.Name == name {
			return c
		}
	}
	return markup.Card{}
}

// =============================================================================
// TESTS
// =============================================================================

func TestApp_InitialLoad(t *testing.T) {
	h := newHarness(t, nil)
	doc := h.app.Document()
	assert.True(t, doc.List.Loading)

	h.drive(h.app.Init())

	assert.False(t, doc.List.Loading)
	require.Len(t, doc.List.Cards, 3)
	assert.Equal(t, []string{"Chess Club", "Programming Class", "Gym Class"}, h.app.Store().Current().Names())

	require.Len(t, doc.Selector.Options, 4)
	assert.Equal(t, markup.PlaceholderLabel, doc.Selector.Options[0].Label)
	assert.Equal(t, "Chess Club", doc.Selector.Options[1].Value)
	assert.Equal(t, 1, h.srv.Count("list"))
}

func TestApp_SignupAlreadySignedUp(t *testing.T) {
	h := newHarness(t, nil)
	h.drive(h.app.Init())

	doc := h.app.Document()
	doc.Selector.Selected = "Chess Club"
	doc.Form.Email = "michael@mergington.edu"
	h.drive(h.app.Signup())

	assert.Equal(t, "Already signed up", doc.Message.Text)
	assert.Equal(t, "error", doc.Message.Kind)
	assert.True(t, doc.Message.Visible)
	assert.Equal(t, 1, h.srv.Count("list"), "a rejected signup must not refresh")
	assert.Equal(t, 2, h.card("Chess Club").Count)
	assert.Equal(t, "michael@mergington.edu", doc.Form.Email)

	require.Len(t, h.clock.timers, 1)
	assert.Equal(t, notify.ErrorDelay, h.clock.timers[0].delay)
}

func TestApp_SignupSuccessRefreshes(t *testing.T) {
	h := newHarness(t, nil)
	h.drive(h.app.Init())

	doc := h.app.Document()
	doc.Selector.Selected = "Gym Class"
	doc.Form.Email = "new@mergington.edu"
	h.drive(h.app.Signup())

	assert.Equal(t, "success", doc.Message.Kind)
	assert.Equal(t, "Signed up new@mergington.edu for Gym Class", doc.Message.Text)
	assert.Equal(t, 2, h.srv.Count("list"))
	assert.Equal(t, 3, h.card("Gym Class").Count)
	assert.Equal(t, "", doc.Selector.Selected)
	assert.Equal(t, "", doc.Form.Email)

	require.Len(t, h.clock.timers, 1)
	assert.Equal(t, notify.SuccessDelay, h.clock.timers[0].delay)
}

func TestApp_ConfirmedUnregisterIssuesExactlyOneGet(t *testing.T) {
	h := newHarness(t, confirm.Always(true))
	h.drive(h.app.Init())

	controls := h.card("Chess Club").Controls
	require.Len(t, controls, 2)
	before := h.srv.Count("list")

	h.drive(h.app.Unregister(controls[0]))

	assert.Equal(t, 1, h.srv.Count("unregister"))
	assert.Equal(t, before+1, h.srv.Count("list"))
	card := h.card("Chess Club")
	assert.Equal(t, 1, card.Count)
	assert.NotContains(t, card.Markup, "michael@mergington.edu")
	assert.False(t, h.app.Document().Message.Visible, "success shows no message")
}

func TestApp_DeclinedUnregisterDoesNothing(t *testing.T) {
	h := newHarness(t, confirm.Always(false))
	h.drive(h.app.Init())

	h.drive(h.app.Unregister(h.card("Chess Club").Controls[0]))

	assert.Equal(t, 0, h.srv.Count("unregister"))
	assert.Equal(t, 1, h.srv.Count("list"))
	assert.Equal(t, 2, h.card("Chess Club").Count)
}

func TestApp_NotificationIdentityGuard(t *testing.T) {
	h := newHarness(t, nil)
	doc := h.app.Document()

	h.drive(h.app.Notify("first", notify.KindError))
	h.drive(h.app.Notify("second", notify.KindSuccess))
	require.Len(t, h.clock.timers, 2)

	// The first timer fires after the second notification replaced it.
	h.drive(func() tea.Msg { return h.clock.timers[0].msg })
	assert.True(t, doc.Message.Visible)
	assert.Equal(t, "second", doc.Message.Text)

	h.drive(func() tea.Msg { return h.clock.timers[1].msg })
	assert.False(t, doc.Message.Visible)
}

func TestApp_FailedRefreshKeepsSelector(t *testing.T) {
	h := newHarness(t, nil)
	h.drive(h.app.Init())

	h.srv.ListHook = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}
	h.drive(h.app.Refresh())

	doc := h.app.Document()
	assert.True(t, doc.List.Failed)
	assert.Equal(t, markup.FailureHTML, doc.List.HTML)
	assert.Empty(t, doc.List.Cards)
	assert.Len(t, doc.Selector.Options, 4)
	assert.Equal(t, 3, h.app.Store().Current().Len())
}

func TestApp_UnknownMessage(t *testing.T) {
	h := newHarness(t, nil)
	assert.Nil(t, h.app.Update("not a message"))
}
