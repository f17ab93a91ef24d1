// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat view for the carter TUI.

# Key Components

## Model (model.go)

The Bubble Tea model owning the session (message list and input buffer),
a textinput for typing, a viewport for the scrollable message list and a
spinner shown while replies are outstanding.

## Sending (input.go)

Send appends the user's message, clears the input and returns a command
that runs the completion request off the UI loop. The reply arrives as a
CompletionMsg and is appended as a bot message. Several requests may be in
flight; replies are appended in the order they arrive.

## View Rendering (view.go)

Header, message bubbles (user right-aligned in blue, bot left-aligned in
gray), the input line with its [ Send ] affordance and a status bar.

# Key Bindings

	Enter          send
	PgUp/PgDn      scroll a page
	Up/Down        scroll a line
	Esc/Ctrl+C     quit
*/
package chat
