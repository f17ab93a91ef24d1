// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for carter.
//
// Configuration is layered, later layers winning:
//   - Built-in defaults
//   - ~/.carter/config.toml (or ~/.carter/config.json)
//   - .env in the working directory
//   - CARTER_* environment variables
//
// The completion model, token limit and temperature are fixed by the
// completion package and are not configurable.
//
// # Environment Variables
//
//   - CARTER_API_KEY: API key (falls back to OPENAI_API_KEY)
//   - CARTER_ENDPOINT: completions endpoint URL
//   - CARTER_TIMEOUT: request timeout in seconds (0 disables)
//   - CARTER_LOG_FILE: debug log destination
//   - CARTER_HOME: overrides the ~/.carter directory
//
// # Usage
//
//	cfg := config.Global()
//	client := completion.NewClient(cfg.API.Key).WithTimeout(cfg.Timeout())
//
// Watch reloads the file on change so the API key can be rotated while
// the TUI is running.
package config
