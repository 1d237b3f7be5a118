// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package roster contains the client-side copy of the remote activity
// collection.
//
// # Key Types
//
//   - Activity: a named, capacity-bounded offering with its participants
//   - Snapshot: every activity as last fetched, in server order
//   - Store: holder of the current snapshot, replaced wholesale
//
// # Usage
//
// Decode a GET /activities body and install it:
//
//	snap, err := roster.Decode(body)
//	if err != nil {
//	    return err
//	}
//	store.Replace(snap)
//
// A snapshot is never patched in place. Every successful fetch produces a new
// one and the previous snapshot is discarded.
package roster
