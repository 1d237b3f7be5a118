// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package page is the client-owned document that controllers draw into.
//
// A Document groups the four handles the client works with: the activity
// list, the activity selector, the signup form and the status message box.
// Controllers receive the Document at construction time; views (the
// terminal board, the HTML export) only read it.
//
// A Document belongs to the event loop and is not safe for concurrent use.
package page
