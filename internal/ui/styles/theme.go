// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the board.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile
	Mode         string

	Width  int
	Height int

	// ==========================================================================
	// HEADER AND STATUS
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	StatusBar      lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	// ==========================================================================
	// SIGNUP FORM
	// ==========================================================================

	Form          lipgloss.Style
	FormFocused   lipgloss.Style
	FormLabel     lipgloss.Style
	Selector      lipgloss.Style
	SelectorEmpty lipgloss.Style

	// ==========================================================================
	// ACTIVITY CARDS
	// ==========================================================================

	Card               lipgloss.Style
	CardFocused        lipgloss.Style
	CardTitle          lipgloss.Style
	CardText           lipgloss.Style
	CardLabel          lipgloss.Style
	SpotsOpen          lipgloss.Style
	SpotsLow           lipgloss.Style
	Participant        lipgloss.Style
	ParticipantFocused lipgloss.Style
	RemoveControl      lipgloss.Style
	Placeholder        lipgloss.Style
	Failure            lipgloss.Style

	// ==========================================================================
	// OVERLAYS
	// ==========================================================================

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	DialogBox    lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogHint   lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	Spinner      lipgloss.Style
}

// NewTheme creates a theme for mode: "dark", "light" or "auto". Unknown
// modes behave like "auto".
func NewTheme(mode string) *Theme {
	mode = strings.ToLower(mode)

	var isDark bool
	switch mode {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		mode = "auto"
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
		Mode:         mode,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Form
	t.Form = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.FormFocused = t.Form.
		BorderForeground(Purple)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(10)

	t.Selector = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.SelectorEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Cards
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		MarginBottom(1)

	t.CardFocused = t.Card.
		BorderForeground(Purple)

	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.CardText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.CardLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.SpotsOpen = lipgloss.NewStyle().
		Foreground(Emerald)

	t.SpotsLow = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.Participant = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ParticipantFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)

	t.RemoveControl = lipgloss.NewStyle().
		Foreground(Rose)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Failure = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Overlays
	t.ToastSuccess = lipgloss.NewStyle().
		Foreground(Emerald).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 1)

	t.ToastError = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	t.DialogBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.DialogTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.DialogHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Cyan)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// ContentWidth is the usable width inside the board's padding, never less
// than 20 columns.
func (t *Theme) ContentWidth() int {
	w := t.Width - 2
	if w < 20 {
		return 20
	}
	return w
}
