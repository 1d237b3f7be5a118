// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the board.
type KeyMap struct {
	SwitchFocus key.Binding
	Up          key.Binding
	Down        key.Binding
	PrevOption  key.Binding
	NextOption  key.Binding
	Submit      key.Binding
	Unregister  key.Binding
	Copy        key.Binding
	Filter      key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Cancel      key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "form/roster"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		PrevOption: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous activity"),
		),
		NextOption: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next activity"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sign up"),
		),
		Unregister: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "unregister"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy email"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// FormHelp returns the bindings shown while the form has focus.
func (k KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.PrevOption, k.NextOption, k.Submit}
}

// RosterHelp returns the bindings shown while the roster has focus.
func (k KeyMap) RosterHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.Down, k.Unregister, k.Copy, k.Filter, k.Refresh, k.Help, k.Quit}
}
