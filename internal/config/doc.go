// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for rosterboard.
//
// Supports TOML, YAML and JSON configuration files, with defaults,
// environment variable overrides, validation and live reload.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (ROSTERBOARD_*)
//   - ~/.rosterboard/config.toml
//   - ~/.rosterboard/config.yaml
//   - ~/.rosterboard/config.json
//   - Built-in defaults
//
// Only the first config file found is read.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := api.NewClientWithConfig(cfg.ClientConfig(logger))
package config
