// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mutation

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rosterboard/internal/api"
	"github.com/jeranaias/rosterboard/internal/api/apitest"
	"github.com/jeranaias/rosterboard/internal/confirm"
	"github.com/jeranaias/rosterboard/internal/page"
	"github.com/jeranaias/rosterboard/internal/storage"
)

// =============================================================================
// FAKES
// =============================================================================

type note struct {
	kind string
	text string
}

type fakeNotifier struct{ notes []note }

func (n *fakeNotifier) Success(text string) tea.Cmd {
	n.notes = append(n.notes, note{"success", text})
	return nil
}

func (n *fakeNotifier) Error(text string) tea.Cmd {
	n.notes = append(n.notes, note{"error", text})
	return nil
}

type fakeRefresher struct{ calls int }

func (r *fakeRefresher) Refresh() tea.Cmd {
	r.calls++
	return nil
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []storage.Entry
}

func (j *fakeJournal) Record(_ context.Context, e storage.Entry) (storage.Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	return e, nil
}

type harness struct {
	srv       *apitest.Server
	ctrl      *Controller
	doc       *page.Document
	notifier  *fakeNotifier
	refresher *fakeRefresher
	journal   *fakeJournal
}

func newHarness(t *testing.T, confirmer confirm.Confirmer) *harness {
	t.Helper()
	srv := apitest.Default()
	t.Cleanup(srv.Close)

	h := &harness{
		srv:       srv,
		doc:       page.New(),
		notifier:  &fakeNotifier{},
		refresher: &fakeRefresher{},
		journal:   &fakeJournal{},
	}
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: srv.URL, Timeout: 2 * time.Second, RequestsPerSecond: 1000, Burst: 100})
	h.ctrl = NewController(Config{
		Client:    client,
		Confirmer: confirmer,
		Notifier:  h.notifier,
		Refresher: h.refresher,
		Document:  h.doc,
		Journal:   h.journal,
	})
	return h
}

// run executes cmd and every command it batches, returning the non-nil
// messages produced.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func single[T any](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	require.Len(t, msgs, 1)
	m, ok := msgs[0].(T)
	require.True(t, ok, "unexpected message %T", msgs[0])
	return m
}

// =============================================================================
// SIGNUP
// =============================================================================

func TestSignup_MissingFields(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		email    string
	}{
		{"no activity", "", "a@x.com"},
		{"no email", "Chess Club", ""},
		{"blank email", "Chess Club", "   "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, nil)
			assert.Empty(t, run(h.ctrl.Signup(tc.activity, tc.email)))
			assert.Equal(t, []note{{"error", MissingFieldsText}}, h.notifier.notes)
			assert.Equal(t, 0, h.srv.Count("signup"))
		})
	}
}

func TestSignup_Success(t *testing.T) {
	h := newHarness(t, nil)
	h.doc.Selector.Selected = "Chess Club"
	h.doc.Form.Email = "new@mergington.edu"

	msg := single[SignupResultMsg](t, run(h.ctrl.Signup("Chess Club", "new@mergington.edu")))
	require.NoError(t, msg.Err)

	run(h.ctrl.HandleSignup(msg))

	assert.Equal(t, []note{{"success", "Signed up new@mergington.edu for Chess Club"}}, h.notifier.notes)
	assert.Equal(t, 1, h.refresher.calls)
	assert.Equal(t, "", h.doc.Form.Email)
	assert.Equal(t, "", h.doc.Selector.Selected)
	assert.Equal(t, 1, h.doc.Form.Resets)
	assert.Contains(t, h.srv.Participants("Chess Club"), "new@mergington.edu")

	require.Len(t, h.journal.entries, 1)
	assert.Equal(t, storage.OutcomeAccepted, h.journal.entries[0].Outcome)
	assert.Equal(t, http.StatusOK, h.journal.entries[0].Status)
}

func TestSignup_SuccessWithoutMessage(t *testing.T) {
	h := newHarness(t, nil)
	run(h.ctrl.HandleSignup(SignupResultMsg{Activity: "Chess Club", Email: "a@x.com", Result: &api.Result{Status: 200}}))
	assert.Equal(t, []note{{"success", SignupSuccessText}}, h.notifier.notes)
}

func TestSignup_AlreadySignedUp(t *testing.T) {
	h := newHarness(t, nil)
	h.doc.Selector.Selected = "Chess Club"
	h.doc.Form.Email = "michael@mergington.edu"

	msg := single[SignupResultMsg](t, run(h.ctrl.Signup("Chess Club", "michael@mergington.edu")))
	require.Error(t, msg.Err)

	run(h.ctrl.HandleSignup(msg))

	assert.Equal(t, []note{{"error", "Already signed up"}}, h.notifier.notes)
	assert.Equal(t, 0, h.refresher.calls)
	assert.Equal(t, "michael@mergington.edu", h.doc.Form.Email, "form must not be reset")
	assert.Equal(t, "Chess Club", h.doc.Selector.Selected)
	assert.Equal(t, 0, h.doc.Form.Resets)

	require.Len(t, h.journal.entries, 1)
	assert.Equal(t, storage.OutcomeRejected, h.journal.entries[0].Outcome)
	assert.Equal(t, http.StatusBadRequest, h.journal.entries[0].Status)
}

func TestSignup_RejectedWithoutDetail(t *testing.T) {
	h := newHarness(t, nil)
	h.srv.MutateHook = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"ignored for signup"}`))
	}

	msg := single[SignupResultMsg](t, run(h.ctrl.Signup("Chess Club", "a@x.com")))
	run(h.ctrl.HandleSignup(msg))

	assert.Equal(t, []note{{"error", SignupFailedText}}, h.notifier.notes)
}

func TestSignup_TransportFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.srv.Close()

	msg := single[SignupResultMsg](t, run(h.ctrl.Signup("Chess Club", "a@x.com")))
	require.True(t, api.IsTransport(msg.Err))

	run(h.ctrl.HandleSignup(msg))

	assert.Equal(t, []note{{"error", SignupFailedText}}, h.notifier.notes)
	assert.Equal(t, 0, h.refresher.calls)
	require.Len(t, h.journal.entries, 1)
	assert.Equal(t, storage.OutcomeFailed, h.journal.entries[0].Outcome)
}

// =============================================================================
// UNREGISTER
// =============================================================================

func TestRequestUnregister_EmptyControlIgnored(t *testing.T) {
	h := newHarness(t, confirm.Always(true))
	assert.Nil(t, h.ctrl.RequestUnregister("", "a@x.com"))
	assert.Nil(t, h.ctrl.RequestUnregister("Chess Club", ""))
}

func TestUnregister_Declined(t *testing.T) {
	h := newHarness(t, confirm.Always(false))

	answer := single[confirm.AnswerMsg](t, run(h.ctrl.RequestUnregister("Chess Club", "michael@mergington.edu")))
	assert.Equal(t, "Unregister michael@mergington.edu from Chess Club?", answer.Request.Prompt())
	assert.False(t, answer.Accepted)

	assert.Empty(t, run(h.ctrl.HandleAnswer(answer)))

	assert.Equal(t, 0, h.srv.Count("unregister"))
	assert.Equal(t, 0, h.srv.Count("list"))
	assert.Empty(t, h.notifier.notes)
	require.Len(t, h.journal.entries, 1)
	assert.Equal(t, storage.OutcomeDeclined, h.journal.entries[0].Outcome)
}

func TestUnregister_ConfirmedSuccess(t *testing.T) {
	h := newHarness(t, confirm.Always(true))

	answer := single[confirm.AnswerMsg](t, run(h.ctrl.RequestUnregister("Chess Club", "michael@mergington.edu")))
	result := single[UnregisterResultMsg](t, run(h.ctrl.HandleAnswer(answer)))
	require.NoError(t, result.Err)

	run(h.ctrl.HandleUnregister(result))

	assert.Equal(t, 1, h.srv.Count("unregister"))
	assert.Equal(t, 1, h.refresher.calls)
	assert.Empty(t, h.notifier.notes, "success shows no notification")
	assert.NotContains(t, h.srv.Participants("Chess Club"), "michael@mergington.edu")
}

func TestUnregister_RejectionTexts(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail wins", `{"detail":"Student not registered for this activity","message":"m"}`, "Student not registered for this activity"},
		{"message fallback", `{"message":"Try later"}`, "Try later"},
		{"generic fallback", `{}`, UnregisterFailedText},
		{"non-string detail", `{"detail":[{"loc":"email"}]}`, UnregisterFailedText},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, confirm.Always(true))
			h.srv.MutateHook = func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tc.body))
			}

			answer := single[confirm.AnswerMsg](t, run(h.ctrl.RequestUnregister("Chess Club", "x@x.com")))
			result := single[UnregisterResultMsg](t, run(h.ctrl.HandleAnswer(answer)))
			run(h.ctrl.HandleUnregister(result))

			assert.Equal(t, []note{{"error", tc.want}}, h.notifier.notes)
			assert.Equal(t, 0, h.refresher.calls)
		})
	}
}

func TestUnregister_TransportFailure(t *testing.T) {
	h := newHarness(t, confirm.Always(true))
	h.srv.Close()

	answer := single[confirm.AnswerMsg](t, run(h.ctrl.RequestUnregister("Chess Club", "a@x.com")))
	result := single[UnregisterResultMsg](t, run(h.ctrl.HandleAnswer(answer)))
	run(h.ctrl.HandleUnregister(result))

	assert.Equal(t, []note{{"error", UnregisterFailedText}}, h.notifier.notes)
	assert.Equal(t, 0, h.refresher.calls)
}

func TestUnregister_ConcurrentEachRefresh(t *testing.T) {
	h := newHarness(t, confirm.Always(true))

	a1 := single[confirm.AnswerMsg](t, run(h.ctrl.RequestUnregister("Chess Club", "michael@mergington.edu")))
	a2 := single[confirm.AnswerMsg](t, run(h.ctrl.RequestUnregister("Chess Club", "daniel@mergington.edu")))

	// Both requests are in flight before either result is handled.
	cmd1, cmd2 := h.ctrl.HandleAnswer(a1), h.ctrl.HandleAnswer(a2)
	var wg sync.WaitGroup
	results := make([]UnregisterResultMsg, 2)
	for i, cmd := range []tea.Cmd{cmd1, cmd2} {
		wg.Add(1)
		go func(i int, cmd tea.Cmd) {
			defer wg.Done()
			results[i] = cmd().(UnregisterResultMsg)
		}(i, cmd)
	}
	wg.Wait()

	for _, r := range results {
		require.NoError(t, r.Err)
		run(h.ctrl.HandleUnregister(r))
	}

	assert.Equal(t, 2, h.refresher.calls)
	assert.Empty(t, h.srv.Participants("Chess Club"))
}

func TestUnregister_ConfirmerError(t *testing.T) {
	h := newHarness(t, confirm.Func(func(confirm.Request) (bool, error) {
		return false, confirm.ErrNotTerminal
	}))

	answer := single[confirm.AnswerMsg](t, run(h.ctrl.RequestUnregister("Chess Club", "a@x.com")))
	assert.Empty(t, run(h.ctrl.HandleAnswer(answer)))
	assert.Equal(t, 0, h.srv.Count("unregister"))
}
