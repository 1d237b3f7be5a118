// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/rosterboard/internal/api"
	"github.com/jeranaias/rosterboard/internal/config"
	"github.com/jeranaias/rosterboard/internal/confirm"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError covers failed flows, including server rejections
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the service could not be reached
	ExitNetworkError = 5
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports a malformed command line.
type UsageError struct {
	Reason  string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\n  Example: %s", e.Reason, e.Example)
	}
	return e.Reason
}

// NewUsageError creates a usage error with an example invocation.
func NewUsageError(reason, example string) error {
	return &UsageError{Reason: reason, Example: example}
}

// FlowError reports a headless flow that ended with an error notification.
// Text is what the board would have shown; Cause is the request error
// behind it, nil for local validation failures.
type FlowError struct {
	Command string
	Text    string
	Cause   error
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Text)
}

func (e *FlowError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err in the standard format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// GetExitCode maps an error to the process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var validationErr config.ValidationError
	var validateErrs config.ValidateErrors
	if errors.As(err, &validationErr) || errors.As(err, &validateErrs) {
		return ExitConfigError
	}

	if errors.Is(err, confirm.ErrNotTerminal) {
		return ExitUsageError
	}

	if _, ok := api.AsClientError(err); ok && !api.IsRejected(err) {
		return ExitNetworkError
	}

	return ExitGeneralError
}
