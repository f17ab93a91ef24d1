// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the carter TUI.

All colors use Lip Gloss AdaptiveColor so a single palette serves light and
dark terminals.

# Color System (colors.go)

	UserBubbleBg / UserBubbleFg - blue bubble for the user's messages
	BotBubbleBg  / BotBubbleFg  - gray bubble for replies
	Accent                      - header title, prompt and send affordance
	TextPrimary / TextMuted     - body and de-emphasized text

# Theme System (theme.go)

NewTheme detects the terminal's color profile and background with termenv.
NO_COLOR or a non-terminal stdout yields the Ascii profile, in which every
style renders plain text.

	theme := styles.NewTheme("auto")
	bubble := theme.UserBubble.Width(40).Render(text)
*/
package styles
