// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	renderer *lipgloss.Renderer

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	EmptyHint  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	SendButton       lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusError  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
}

// NewTheme creates a theme for stdout. mode is "auto", "dark" or "light";
// "auto" asks the terminal for its background color.
func NewTheme(mode string) *Theme {
	profile := termenv.EnvColorProfile()
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		profile = termenv.Ascii
	}

	isDark := mode != "light"
	if mode == "auto" && profile != termenv.Ascii {
		isDark = termenv.HasDarkBackground()
	}
	return newTheme(profile, isDark)
}

// NewThemeWithProfile creates a theme with a fixed color profile and no
// terminal queries. "auto" is treated as dark.
func NewThemeWithProfile(mode string, profile termenv.Profile) *Theme {
	return newTheme(profile, mode != "light")
}

func newTheme(profile termenv.Profile, isDark bool) *Theme {
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
		renderer:     r,
	}
	t.initStyles()
	return t
}

// NoColor reports whether styles render as plain text.
func (t *Theme) NoColor() bool {
	return t.ColorProfile == termenv.Ascii
}

// NewStyle returns an empty style bound to the theme's renderer.
func (t *Theme) NewStyle() lipgloss.Style {
	return t.renderer.NewStyle()
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	s := t.NewStyle

	// Header
	t.Header = s().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = s().
		Bold(true).
		Foreground(Accent)

	t.HeaderSubtitle = s().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = s().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1)

	t.BotBubble = s().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		Padding(0, 1)

	t.EmptyHint = s().
		Foreground(TextMuted).
		Italic(true)

	// Input area
	t.InputContainer = s().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.InputPrompt = s().
		Foreground(Accent).
		Bold(true)

	t.InputText = s().
		Foreground(TextPrimary)

	t.InputPlaceholder = s().
		Foreground(TextMuted).
		Italic(true)

	t.SendButton = s().
		Foreground(Accent).
		Bold(true)

	// Status bar
	t.StatusBar = s().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusError = s().
		Foreground(Rose)

	t.ShortcutKey = s().
		Foreground(Accent).
		Bold(true)

	t.ShortcutDesc = s().
		Foreground(TextMuted)

	t.Spinner = s().
		Foreground(Accent)
}
