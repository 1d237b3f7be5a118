// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// validCommands lists every command name and alias Parse accepts, in the
// order ties are broken.
var validCommands = []string{
	"tui",
	"list",
	"ls",
	"signup",
	"unregister",
	"history",
	"config",
	"version",
	"help",
}

// commandSynonyms maps words people try for a roster action to the command
// that performs it.
var commandSynonyms = map[string]string{
	"show":     "list",
	"join":     "signup",
	"register": "signup",
	"add":      "signup",
	"remove":   "unregister",
	"rm":       "unregister",
	"leave":    "unregister",
	"drop":     "unregister",
	"log":      "history",
}

// SuggestCommand returns the command the user most likely meant, or ""
// when input is already valid or nothing is close.
func SuggestCommand(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if slices.Contains(validCommands, input) {
		return ""
	}
	if cmd, ok := commandSynonyms[input]; ok {
		return cmd
	}

	n := utf8.RuneCountInString(input)
	if n < 2 {
		return ""
	}
	if cmd := uniquePrefixMatch(input); cmd != "" {
		return cmd
	}

	budget := 1
	switch {
	case n > 8:
		budget = 3
	case n >= 4:
		budget = 2
	}

	best, bestDistance := "", budget+1
	for _, cmd := range validCommands {
		if d := editDistance(input, cmd); d < bestDistance {
			best, bestDistance = cmd, d
		}
	}
	return best
}

// uniquePrefixMatch returns the only command starting with prefix.
func uniquePrefixMatch(prefix string) string {
	match := ""
	for _, cmd := range validCommands {
		if !strings.HasPrefix(cmd, prefix) {
			continue
		}
		if match != "" {
			return ""
		}
		match = cmd
	}
	return match
}

// editDistance is the Levenshtein distance between a and b in runes.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			above := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[j] = min(above+1, row[j-1]+1, diag+cost)
			diag = above
		}
	}
	return row[len(rb)]
}
