// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup projects a roster snapshot into HTML view blocks and
// selector options.
//
// All server-supplied text (activity names, descriptions, schedules and
// participant emails) passes through Escape before it is placed in markup.
//
// # Usage
//
//	out := markup.Render(store.Current())
//	fmt.Println(out.ListHTML())
//	for _, opt := range out.Options {
//	    fmt.Println(opt.Value, opt.Label)
//	}
//
// Render is pure: the same snapshot always yields the same Output and no
// state is kept between calls.
package markup
