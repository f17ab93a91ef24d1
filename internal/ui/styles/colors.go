// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Accent is used for the header title, input prompt and send affordance.
var Accent = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// Rose marks failed replies in the status line.
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// SurfaceDim is the background of the header and status bar.
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay draws separators around the input area.
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// TextPrimary is the main content text.
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary is supporting text.
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted is de-emphasized text such as placeholders and hints.
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User bubbles are blue.
var (
	UserBubbleBg = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#1D4ED8"}
	UserBubbleFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#EFF6FF"}
)

// Bot bubbles are gray.
var (
	BotBubbleBg = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
	BotBubbleFg = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}
)
