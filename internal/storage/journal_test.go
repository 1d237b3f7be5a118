// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") should fail")
	}
}

func TestJournal_RecordAssignsIDAndTime(t *testing.T) {
	j := openTemp(t)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	e, err := j.Record(context.Background(), Entry{
		Action:   ActionSignup,
		Activity: "Chess Club",
		Email:    "a@x.com",
		Outcome:  OutcomeAccepted,
		Status:   200,
		Text:     "Signed up a@x.com for Chess Club",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.True(t, e.At.Equal(fixed))

	got, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
	assert.Equal(t, ActionSignup, got[0].Action)
	assert.Equal(t, OutcomeAccepted, got[0].Outcome)
	assert.Equal(t, "Chess Club", got[0].Activity)
	assert.Equal(t, 200, got[0].Status)
	assert.True(t, got[0].At.Equal(fixed))
}

func TestJournal_RecentNewestFirstWithLimit(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	for _, email := range emails {
		_, err := j.Record(ctx, Entry{Action: ActionUnregister, Activity: "Gym Class", Email: email, Outcome: OutcomeDeclined})
		require.NoError(t, err)
	}

	got, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c@x.com", got[0].Email)
	assert.Equal(t, "b@x.com", got[1].Email)

	all, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := j.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestJournal_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	require.NoError(t, err)
	_, err = j.Record(context.Background(), Entry{Action: ActionSignup, Activity: "Chess Club", Email: "a@x.com", Outcome: OutcomeRejected, Status: 400, Text: "Already signed up"})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	got, err := j.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Already signed up", got[0].Text)
}

func TestJournal_Closed(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	_, err = j.Record(context.Background(), Entry{})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Record after Close = %v, want ErrClosed", err)
	}
	if _, err := j.Recent(context.Background(), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Recent after Close = %v, want ErrClosed", err)
	}
}
