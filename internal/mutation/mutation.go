// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mutation performs signups and unregisters against the activities
// service and reacts to their outcomes.
//
// Each mutation is split the same way a refresh is: the network call runs
// inside a command and the outcome is handled in the event loop when its
// result message arrives. A successful mutation never edits the roster on
// screen; it asks the refresh controller for a full reload instead.
package mutation

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rosterboard/internal/api"
	"github.com/jeranaias/rosterboard/internal/confirm"
	"github.com/jeranaias/rosterboard/internal/page"
	"github.com/jeranaias/rosterboard/internal/storage"
)

// User-facing texts.
const (
	MissingFieldsText    = "Please select an activity and enter an email."
	SignupSuccessText    = "Signed up successfully."
	SignupFailedText     = "Failed to sign up. Please try again."
	UnregisterFailedText = "Failed to unregister participant. Please try again."
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Mutator performs the two mutating requests.
type Mutator interface {
	Signup(ctx context.Context, activity, email string) (*api.Result, error)
	Unregister(ctx context.Context, activity, email string) (*api.Result, error)
}

// Notifier shows transient messages. *notify.Controller satisfies it.
type Notifier interface {
	Success(text string) tea.Cmd
	Error(text string) tea.Cmd
}

// Refresher reloads the roster. *refresh.Controller satisfies it.
type Refresher interface {
	Refresh() tea.Cmd
}

// Recorder persists mutation outcomes. *storage.Journal satisfies it.
type Recorder interface {
	Record(ctx context.Context, e storage.Entry) (storage.Entry, error)
}

// =============================================================================
// MESSAGES
// =============================================================================

// SignupResultMsg carries the outcome of a signup request.
type SignupResultMsg struct {
	Activity string
	Email    string
	Result   *api.Result
	Err      error
}

// UnregisterResultMsg carries the outcome of an unregister request.
type UnregisterResultMsg struct {
	Activity string
	Email    string
	Result   *api.Result
	Err      error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Config wires a Controller. Journal and Logger are optional.
type Config struct {
	Client    Mutator
	Confirmer confirm.Confirmer
	Notifier  Notifier
	Refresher Refresher
	Document  *page.Document
	Journal   Recorder
	Logger    *log.Logger
	// Timeout bounds each request. Zero means 15 seconds.
	Timeout time.Duration
}

// Controller handles signup and unregister flows.
type Controller struct {
	client    Mutator
	confirmer confirm.Confirmer
	notifier  Notifier
	refresher Refresher
	doc       *page.Document
	journal   Recorder
	logger    *log.Logger
	timeout   time.Duration
}

// NewController returns a controller for cfg.
func NewController(cfg Config) *Controller {
	c := &Controller{
		client:    cfg.Client,
		confirmer: cfg.Confirmer,
		notifier:  cfg.Notifier,
		refresher: cfg.Refresher,
		doc:       cfg.Document,
		journal:   cfg.Journal,
		logger:    cfg.Logger,
		timeout:   cfg.Timeout,
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	if c.timeout <= 0 {
		c.timeout = 15 * time.Second
	}
	if c.confirmer == nil {
		c.confirmer = confirm.Always(false)
	}
	return c
}

// =============================================================================
// SIGNUP
// =============================================================================

// Signup validates the form values and returns the command that submits
// them. Missing values produce an error notification and no request.
func (c *Controller) Signup(activity, email string) tea.Cmd {
	if activity == "" || strings.TrimSpace(email) == "" {
		return c.notifier.Error(MissingFieldsText)
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		result, err := c.client.Signup(ctx, activity, email)
		return SignupResultMsg{Activity: activity, Email: email, Result: result, Err: err}
	}
}

// HandleSignup reacts to a finished signup. Only success resets the form
// and reloads the roster.
func (c *Controller) HandleSignup(msg SignupResultMsg) tea.Cmd {
	entry := storage.Entry{Action: storage.ActionSignup, Activity: msg.Activity, Email: msg.Email}

	if msg.Err == nil {
		text := SignupSuccessText
		if msg.Result != nil && msg.Result.Message != "" {
			text = msg.Result.Message
		}
		c.logger.Printf("SIGNUP_OK | activity=%q email=%q", msg.Activity, msg.Email)
		c.doc.ResetForm()

		entry.Outcome, entry.Status, entry.Text = storage.OutcomeAccepted, resultStatus(msg.Result), text
		return tea.Batch(c.notifier.Success(text), c.record(entry), c.refresher.Refresh())
	}

	text := SignupFailedText
	entry.Outcome = storage.OutcomeFailed
	if api.IsTransport(msg.Err) {
		c.logger.Printf("SIGNUP_FAILED | activity=%q email=%q error=%v", msg.Activity, msg.Email, msg.Err)
	} else if ce, ok := api.AsClientError(msg.Err); ok {
		if detail := ce.ServerText(false); detail != "" {
			text = detail
		}
		entry.Outcome, entry.Status = storage.OutcomeRejected, ce.Status
		c.logger.Printf("SIGNUP_REJECTED | activity=%q email=%q status=%d detail=%q", msg.Activity, msg.Email, ce.Status, ce.Detail)
	}

	entry.Text = text
	return tea.Batch(c.notifier.Error(text), c.record(entry))
}

// =============================================================================
// UNREGISTER
// =============================================================================

// RequestUnregister asks for confirmation to remove email from activity.
// Controls without both values are ignored.
func (c *Controller) RequestUnregister(activity, email string) tea.Cmd {
	if activity == "" || email == "" {
		return nil
	}
	return c.confirmer.Confirm(confirm.Request{Activity: activity, Email: email})
}

// HandleAnswer sends the unregister request once the user has agreed.
// A declined or failed confirmation ends the flow silently.
func (c *Controller) HandleAnswer(msg confirm.AnswerMsg) tea.Cmd {
	activity, email := msg.Request.Activity, msg.Request.Email

	if msg.Err != nil || !msg.Accepted {
		if msg.Err != nil {
			c.logger.Printf("UNREGISTER_UNCONFIRMED | activity=%q email=%q error=%v", activity, email, msg.Err)
		} else {
			c.logger.Printf("UNREGISTER_DECLINED | activity=%q email=%q", activity, email)
		}
		return c.record(storage.Entry{
			Action:   storage.ActionUnregister,
			Activity: activity,
			Email:    email,
			Outcome:  storage.OutcomeDeclined,
		})
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		result, err := c.client.Unregister(ctx, activity, email)
		return UnregisterResultMsg{Activity: activity, Email: email, Result: result, Err: err}
	}
}

// HandleUnregister reacts to a finished unregister. Success only reloads
// the roster; failure only shows an error.
func (c *Controller) HandleUnregister(msg UnregisterResultMsg) tea.Cmd {
	entry := storage.Entry{Action: storage.ActionUnregister, Activity: msg.Activity, Email: msg.Email}

	if msg.Err == nil {
		c.logger.Printf("UNREGISTER_OK | activity=%q email=%q", msg.Activity, msg.Email)
		entry.Outcome, entry.Status = storage.OutcomeAccepted, resultStatus(msg.Result)
		if msg.Result != nil {
			entry.Text = msg.Result.Message
		}
		return tea.Batch(c.record(entry), c.refresher.Refresh())
	}

	text := UnregisterFailedText
	entry.Outcome = storage.OutcomeFailed
	if api.IsTransport(msg.Err) {
		c.logger.Printf("UNREGISTER_FAILED | activity=%q email=%q error=%v", msg.Activity, msg.Email, msg.Err)
	} else if ce, ok := api.AsClientError(msg.Err); ok {
		if server := ce.ServerText(true); server != "" {
			text = server
		}
		entry.Outcome, entry.Status = storage.OutcomeRejected, ce.Status
		c.logger.Printf("UNREGISTER_REJECTED | activity=%q email=%q status=%d detail=%q message=%q",
			msg.Activity, msg.Email, ce.Status, ce.Detail, ce.ServerMessage)
	}

	entry.Text = text
	return tea.Batch(c.notifier.Error(text), c.record(entry))
}

// =============================================================================
// JOURNAL
// =============================================================================

// record returns the command that writes e to the journal, or nil when no
// journal is configured. Write failures are logged and otherwise ignored.
func (c *Controller) record(e storage.Entry) tea.Cmd {
	if c.journal == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := c.journal.Record(ctx, e); err != nil {
			c.logger.Printf("JOURNAL_WRITE_FAILED | action=%s activity=%q error=%v", e.Action, e.Activity, err)
		}
		return nil
	}
}

func resultStatus(r *api.Result) int {
	if r == nil {
		return 0
	}
	return r.Status
}
