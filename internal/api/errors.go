// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"strconv"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeTransport means the request never completed.
	ErrTypeTransport
	// ErrTypeTimeout means the request was abandoned after the client timeout.
	ErrTypeTimeout
	// ErrTypeInvalidResponse means a response arrived but its body could not
	// be read or parsed.
	ErrTypeInvalidResponse
	// ErrTypeRejected means the server answered non-2xx with a JSON body.
	ErrTypeRejected
)

// String returns a short name for logs.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeTransport:
		return "transport"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ClientError represents an error from the activities client.
type ClientError struct {
	Type    ErrorType
	Message string
	Status  int

	// Detail and ServerMessage hold the "detail" and "message" fields of a
	// rejection body, when present.
	Detail        string
	ServerMessage string

	Cause error
}

func (e *ClientError) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg += " (status " + strconv.Itoa(e.Status) + ")"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ServerText returns the first non-empty server-provided text, looking at
// Detail first and then, if withMessage is set, ServerMessage.
func (e *ClientError) ServerText(withMessage bool) string {
	if e.Detail != "" {
		return e.Detail
	}
	if withMessage {
		return e.ServerMessage
	}
	return ""
}

// AsClientError extracts a *ClientError from err.
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsRejected reports whether err is a structured rejection from the server.
func IsRejected(err error) bool {
	ce, ok := AsClientError(err)
	return ok && ce.Type == ErrTypeRejected
}

// IsTransport reports whether err means the request did not complete or its
// response could not be interpreted.
func IsTransport(err error) bool {
	ce, ok := AsClientError(err)
	if !ok {
		return err != nil
	}
	switch ce.Type {
	case ErrTypeTransport, ErrTypeTimeout, ErrTypeInvalidResponse, ErrTypeUnknown:
		return true
	}
	return false
}
