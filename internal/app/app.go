// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the document, the roster store and the controllers into
// one dispatcher.
//
// App is not a tea.Model. Front ends (the interactive board and the
// headless CLI runner) embed it, forward every message to Update and run
// the commands it returns.
package app

import (
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rosterboard/internal/confirm"
	"github.com/jeranaias/rosterboard/internal/markup"
	"github.com/jeranaias/rosterboard/internal/mutation"
	"github.com/jeranaias/rosterboard/internal/notify"
	"github.com/jeranaias/rosterboard/internal/page"
	"github.com/jeranaias/rosterboard/internal/refresh"
	"github.com/jeranaias/rosterboard/internal/roster"
)

// Client is the remote service as the app needs it. *api.Client
// satisfies it.
type Client interface {
	refresh.Lister
	mutation.Mutator
}

// Options configures New. Client is required.
type Options struct {
	Client    Client
	Confirmer confirm.Confirmer
	Journal   mutation.Recorder
	Logger    *log.Logger

	// Schedule creates dismissal timers. Nil means tea.Tick.
	Schedule notify.Scheduler

	// RequestTimeout bounds each refresh and mutation. Zero keeps the
	// controllers' defaults.
	RequestTimeout time.Duration
}

// App owns the client state.
type App struct {
	doc   *page.Document
	store *roster.Store

	refresh  *refresh.Controller
	notify   *notify.Controller
	mutation *mutation.Controller

	logger *log.Logger
}

// New builds an app in its page-load state.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	doc := page.New()
	store := roster.NewStore()

	refresher := refresh.NewController(opts.Client, store, doc, logger)
	if opts.RequestTimeout > 0 {
		refresher.SetTimeout(opts.RequestTimeout)
	}
	notifier := notify.NewController(doc, opts.Schedule)

	return &App{
		doc:     doc,
		store:   store,
		refresh: refresher,
		notify:  notifier,
		mutation: mutation.NewController(mutation.Config{
			Client:    opts.Client,
			Confirmer: opts.Confirmer,
			Notifier:  notifier,
			Refresher: refresher,
			Document:  doc,
			Journal:   opts.Journal,
			Logger:    logger,
			Timeout:   opts.RequestTimeout,
		}),
		logger: logger,
	}
}

// Document returns the live document.
func (a *App) Document() *page.Document { return a.doc }

// Store returns the roster store.
func (a *App) Store() *roster.Store { return a.store }

// Init starts the initial roster load.
func (a *App) Init() tea.Cmd {
	return a.refresh.Refresh()
}

// Update handles one message and returns any follow-up command. Messages
// the app does not own are ignored.
func (a *App) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case refresh.RefreshedMsg:
		a.refresh.Apply(msg)
	case mutation.SignupResultMsg:
		return a.mutation.HandleSignup(msg)
	case confirm.AnswerMsg:
		return a.mutation.HandleAnswer(msg)
	case mutation.UnregisterResultMsg:
		return a.mutation.HandleUnregister(msg)
	case notify.DismissMsg:
		a.notify.Dismiss(msg)
	}
	return nil
}

// =============================================================================
// USER ACTIONS
// =============================================================================

// Refresh reloads the roster on demand.
func (a *App) Refresh() tea.Cmd {
	return a.refresh.Refresh()
}

// Signup submits the form's current selection and email.
func (a *App) Signup() tea.Cmd {
	return a.mutation.Signup(a.doc.Selector.Selected, a.doc.Form.Email)
}

// Unregister starts removal of the participant a control was rendered for.
func (a *App) Unregister(control markup.Control) tea.Cmd {
	return a.mutation.RequestUnregister(control.Activity, control.Email)
}

// Notify shows a message outside the mutation flows, such as a clipboard
// confirmation.
func (a *App) Notify(text string, kind notify.Kind) tea.Cmd {
	if kind == notify.KindSuccess {
		return a.notify.Success(text)
	}
	return a.notify.Error(text)
}
