// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package refresh fetches the authoritative roster and redraws the
// document from it.
//
// A refresh is split at its only suspension point: Refresh returns the
// command that performs the network read, and Apply runs, inside the event
// loop, once the read has finished.
package refresh

import (
	"context"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rosterboard/internal/markup"
	"github.com/jeranaias/rosterboard/internal/page"
	"github.com/jeranaias/rosterboard/internal/roster"
)

// Lister reads the full roster.
type Lister interface {
	ListActivities(ctx context.Context) (*roster.Snapshot, error)
}

// RefreshedMsg carries the outcome of one roster read.
type RefreshedMsg struct {
	Seq      int
	Snapshot *roster.Snapshot
	Err      error
}

// Controller is the single path by which the roster on screen changes.
type Controller struct {
	client  Lister
	store   *roster.Store
	doc     *page.Document
	logger  *log.Logger
	timeout time.Duration

	// issued numbers refreshes for log correlation only.
	issued int
}

// NewController returns a controller. A nil logger discards output.
func NewController(client Lister, store *roster.Store, doc *page.Document, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		client:  client,
		store:   store,
		doc:     doc,
		logger:  logger,
		timeout: 15 * time.Second,
	}
}

// SetTimeout changes the per-read timeout.
func (c *Controller) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Refresh returns the command that reads the roster.
func (c *Controller) Refresh() tea.Cmd {
	c.issued++
	seq := c.issued
	return func() tea.Msg {
		return c.fetch(context.Background(), seq)
	}
}

func (c *Controller) fetch(ctx context.Context, seq int) RefreshedMsg {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	snap, err := c.client.ListActivities(ctx)
	return RefreshedMsg{Seq: seq, Snapshot: snap, Err: err}
}

// Apply installs a fetched roster. On success the store is replaced and the
// list and selector are rebuilt from scratch. On failure the store and
// selector are kept and the list shows only the failure message.
func (c *Controller) Apply(msg RefreshedMsg) {
	if msg.Err != nil || msg.Snapshot == nil {
		c.logger.Printf("Error fetching activities (refresh #%d): %v", msg.Seq, msg.Err)
		c.doc.List.ShowFailure()
		return
	}

	c.store.Replace(msg.Snapshot)
	out := markup.Render(msg.Snapshot)
	c.doc.List.ShowRoster(out)
	c.doc.Selector.Rebuild(out.Options)
	c.logger.Printf("Roster refreshed (refresh #%d): %d activities", msg.Seq, msg.Snapshot.Len())
}

// Load performs a refresh synchronously.
func (c *Controller) Load(ctx context.Context) error {
	c.issued++
	msg := c.fetch(ctx, c.issued)
	c.Apply(msg)
	return msg.Err
}
