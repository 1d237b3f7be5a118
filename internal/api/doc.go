// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the remote activities service.
//
// # Endpoints
//
//   - GET  /activities                             full roster
//   - POST /activities/{name}/signup?email={email}     add a participant
//   - POST /activities/{name}/unregister?email={email} remove a participant
//
// Activity names are percent-encoded as a path segment and emails as a
// query value before transmission.
//
// # Errors
//
// Every failure is a *ClientError. Its Type separates requests that never
// completed (ErrTypeTransport, ErrTypeTimeout), bodies that could not be
// read (ErrTypeInvalidResponse) and structured rejections from the server
// (ErrTypeRejected, with Detail and Message copied from the body).
//
// # Usage
//
//	client := api.NewClient()
//	snap, err := client.ListActivities(ctx)
//	res, err := client.Signup(ctx, "Chess Club", "a@x.com")
//	if api.IsRejected(err) {
//	    fmt.Println(err.(*api.ClientError).Detail)
//	}
package api
