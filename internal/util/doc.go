// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the CLI and the terminal UI.
//
// String Utilities:
//   - Sanitize: strips control characters so server text cannot drive the terminal
//   - TruncateWidth, PadWidth: display-width aware layout via go-runewidth
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
