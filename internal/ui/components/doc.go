// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual pieces of the rosterboard board.
//
// # Key Types
//
//   - ConfirmDialog: modal yes/no prompt that answers unregister requests
//   - RenderCards: activity cards with focusable removal controls
//   - RenderToast: the transient notification
//   - RenderHelp: markdown key reference rendered with glamour
//   - Highlight: chroma syntax highlighting for exported HTML
//
// Everything here only draws. State lives in the page document and the
// controllers; components receive it as arguments.
package components
