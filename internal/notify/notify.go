// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify manages the single transient status message.
//
// Each notification gets a fresh token. Its dismissal timer carries that
// token, so a timer scheduled for an older notification can never hide a
// newer one.
package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/rosterboard/internal/page"
)

// =============================================================================
// KINDS AND DELAYS
// =============================================================================

// Kind is the notification kind. Its value doubles as the CSS class.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// SuccessDelay is how long a signup confirmation stays visible.
const SuccessDelay = 5 * time.Second

// ErrorDelay is how long an error stays visible.
const ErrorDelay = 4 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// DismissMsg is delivered when a notification's timer elapses.
type DismissMsg struct {
	Token string
}

// Scheduler returns a command that waits d and then yields fn's message.
// tea.Tick satisfies it.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the document's message box.
type Controller struct {
	doc      *page.Document
	schedule Scheduler
}

// NewController returns a controller drawing into doc. A nil scheduler
// uses tea.Tick.
func NewController(doc *page.Document, schedule Scheduler) *Controller {
	if schedule == nil {
		schedule = tea.Tick
	}
	return &Controller{doc: doc, schedule: schedule}
}

// Notify shows text immediately, replacing whatever was shown, and returns
// the command that will dismiss this notification after delay.
func (c *Controller) Notify(text string, kind Kind, delay time.Duration) tea.Cmd {
	token := uuid.NewString()
	c.doc.Message = page.Message{
		Text:    text,
		Kind:    string(kind),
		Visible: true,
		Token:   token,
	}
	return c.schedule(delay, func(time.Time) tea.Msg {
		return DismissMsg{Token: token}
	})
}

// Success shows a success notification for SuccessDelay.
func (c *Controller) Success(text string) tea.Cmd {
	return c.Notify(text, KindSuccess, SuccessDelay)
}

// Error shows an error notification for ErrorDelay.
func (c *Controller) Error(text string) tea.Cmd {
	return c.Notify(text, KindError, ErrorDelay)
}

// Dismiss hides the message if msg belongs to the notification on screen.
// It reports whether anything was hidden.
func (c *Controller) Dismiss(msg DismissMsg) bool {
	m := &c.doc.Message
	if !m.Visible || m.Token != msg.Token {
		return false
	}
	m.Visible = false
	return true
}

// Current returns the message box state.
func (c *Controller) Current() page.Message {
	return c.doc.Message
}
