// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/glamour"
)

// HelpMarkdown is the key reference shown by the help overlay.
const HelpMarkdown = `# rosterboard

| Key | Action |
|-----|--------|
| tab | switch between the signup form and the roster |
| ← / → | choose an activity (form) |
| enter | sign up (form) |
| ↑ / ↓ | move between participants (roster) |
| d / delete | unregister the selected participant |
| y | copy the selected email |
| / | filter activities by name |
| r | reload the roster |
| ? | toggle this help |
| q / ctrl+c | quit |

Signups and removals are sent to the server; the roster always shows what
the server last reported.
`

// RenderHelp renders HelpMarkdown for a terminal of the given width and
// background. It falls back to the raw markdown if rendering fails.
func RenderHelp(width int, dark bool) string {
	style := "light"
	if dark {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return HelpMarkdown
	}
	out, err := r.Render(HelpMarkdown)
	if err != nil {
		return HelpMarkdown
	}
	return out
}
