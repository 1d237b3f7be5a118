// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package board provides the interactive roster board: the signup form, the
// activity cards with their removal controls and the status message box.
package board

import (
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"

	"github.com/jeranaias/rosterboard/internal/app"
	"github.com/jeranaias/rosterboard/internal/config"
	"github.com/jeranaias/rosterboard/internal/markup"
	"github.com/jeranaias/rosterboard/internal/mutation"
	"github.com/jeranaias/rosterboard/internal/notify"
	"github.com/jeranaias/rosterboard/internal/ui/components"
	"github.com/jeranaias/rosterboard/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

// Focus is the board area receiving keys.
type Focus int

const (
	FocusForm   Focus = iota // Signup form
	FocusRoster              // Activity cards
)

// FormField is the focused field inside the signup form.
type FormField int

const (
	FieldSelector FormField = iota
	FieldEmail
)

// ConfigReloadedMsg carries a configuration re-read after the file changed.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// =============================================================================
// BOARD MODEL
// =============================================================================

// Options configures New. Client is required.
type Options struct {
	Client  app.Client
	Journal mutation.Recorder
	Logger  *log.Logger

	// Theme is "dark", "light" or "auto".
	Theme string

	// Schedule creates dismissal timers. Nil means tea.Tick.
	Schedule notify.Scheduler

	// ServerURL is shown in the header.
	ServerURL string

	// RequestTimeout bounds each request. Zero keeps the defaults.
	RequestTimeout time.Duration
}

// Model is the Bubble Tea model for the board.
type Model struct {
	app    *app.App
	dialog *components.ConfirmDialog

	// Styling
	theme *styles.Theme
	keys  KeyMap

	// Form
	email textinput.Model
	field FormField

	// Roster
	viewport viewport.Model
	spinner  spinner.Model
	control  int
	filter   textinput.Model

	filtering bool
	showHelp  bool
	focus     Focus

	// Dimensions
	width  int
	height int

	serverURL  string
	clipboard  func(string) error
	lastResets int
	logger     *log.Logger
}

// New creates a board. The roster is loaded by Init.
func New(opts Options) Model {
	theme := styles.NewTheme(opts.Theme)
	dialog := components.NewConfirmDialog(theme)

	email := textinput.New()
	email.Prompt = ""
	email.Placeholder = "your-email@mergington.edu"
	email.CharLimit = 254
	email.Width = 40

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter activities"
	filter.CharLimit = 64

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 8,
	}
	s.Style = theme.Spinner

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		app: app.New(app.Options{
			Client:         opts.Client,
			Confirmer:      dialog,
			Journal:        opts.Journal,
			Logger:         logger,
			Schedule:       opts.Schedule,
			RequestTimeout: opts.RequestTimeout,
		}),
		dialog:    dialog,
		theme:     theme,
		keys:      DefaultKeyMap(),
		email:     email,
		filter:    filter,
		viewport:  viewport.New(80, 20),
		spinner:   s,
		focus:     FocusForm,
		field:     FieldSelector,
		serverURL: opts.ServerURL,
		clipboard: clipboard.WriteAll,
		logger:    logger,
	}
}

// App returns the dispatcher behind the board.
func (m Model) App() *app.App { return m.app }

// Focus returns the focused area.
func (m Model) Focus() Focus { return m.focus }

// FocusedControl returns the removal control under the cursor.
func (m Model) FocusedControl() (markup.Control, bool) {
	controls := m.visibleControls()
	if m.focus != FocusRoster || m.control < 0 || m.control >= len(controls) {
		return markup.Control{}, false
	}
	return controls[m.control], true
}

// SetClipboard replaces the clipboard writer.
func (m *Model) SetClipboard(write func(string) error) {
	m.clipboard = write
}

// DisableCursorBlink stops the text inputs from scheduling blink ticks.
func (m *Model) DisableCursorBlink() {
	m.email.Cursor.SetMode(cursor.CursorStatic)
	m.filter.Cursor.SetMode(cursor.CursorStatic)
}

// Init loads the roster and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.app.Init(), m.spinner.Tick)
}

// =============================================================================
// FILTERING
// =============================================================================

// visibleCards returns the cards whose name contains the filter text,
// compared case-insensitively.
func (m Model) visibleCards() []markup.Card {
	cards := m.app.Document().List.Cards
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		return cards
	}

	fold := cases.Fold()
	query = fold.String(query)
	var out []markup.Card
	for _, c := range cards {
		if strings.Contains(fold.String(c.Name), query) {
			out = append(out, c)
		}
	}
	return out
}

func (m Model) visibleControls() []markup.Control {
	var controls []markup.Control
	for _, c := range m.visibleCards() {
		controls = append(controls, c.Controls...)
	}
	return controls
}
