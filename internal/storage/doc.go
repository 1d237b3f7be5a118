// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for rosterboard.
//
// The only store is the mutation journal: a SQLite database recording every
// signup and unregister the client attempted and how it ended. The journal
// is a local audit trail. It is never read back into the roster, which
// always comes from the server.
//
// Usage:
//
//	j, err := storage.Open(path)
//	if err != nil {
//	    return err
//	}
//	defer j.Close()
//
//	j.Record(ctx, storage.Entry{Action: storage.ActionSignup, ...})
//	recent, err := j.Recent(ctx, 20)
package storage
