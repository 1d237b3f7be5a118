// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the rosterboard
terminal UI.

# Color System (colors.go)

All colors use Lip Gloss AdaptiveColor, so a single palette serves light and
dark terminals:

  - Purple - focus, selected controls, headers
  - Cyan - brand and informational text
  - Emerald - success notifications, open spots
  - Amber - nearly full activities, over-capacity counts
  - Rose - errors and the remove control

Status indicators pair every color with an ASCII shape ([OK], [X], [!]) so
state is readable without color.

# Themes (theme.go)

NewTheme builds every style from the palette. The mode selects the
background: "dark", "light", or "auto" to ask the terminal via termenv.
*/
package styles
