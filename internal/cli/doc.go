// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the carter command tree.
//
// # Commands
//
//   - carter: start the chat TUI
//   - carter ask <prompt...>: one completion printed to stdout
//   - carter chat: line-based chat with input history
//   - carter config show|path|init: inspect or create the config file
//
// # Global Flags
//
//	--config PATH    read configuration from PATH instead of ~/.carter
//	--endpoint URL   override api.endpoint
//	--debug          enable debug logging
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute(version))
//	}
package cli
