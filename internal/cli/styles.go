// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carter/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// Shared styles for line-oriented output.
var (
	// PromptStyle renders the chat REPL prompt.
	PromptStyle = lipgloss.NewStyle().
			Foreground(styles.Accent).
			Bold(true)

	// BotStyle renders the reply label.
	BotStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Bold(true)

	// InfoStyle is used for banners and hints.
	InfoStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// ErrorStyle is used for error messages and failed replies.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// WarningStyle is used for warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// LabelStyle is used for field labels in config output.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10)
)
