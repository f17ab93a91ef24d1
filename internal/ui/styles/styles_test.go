// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestNewThemeWithProfile_Mode(t *testing.T) {
	if theme := NewThemeWithProfile("light", termenv.TrueColor); theme.IsDark {
		t.Error("light mode should not be dark")
	}
	if theme := NewThemeWithProfile("dark", termenv.TrueColor); !theme.IsDark {
		t.Error("dark mode should be dark")
	}
	if theme := NewThemeWithProfile("auto", termenv.TrueColor); !theme.IsDark {
		t.Error("auto without detection should default to dark")
	}
}

func TestAsciiProfileRendersPlainText(t *testing.T) {
	theme := NewThemeWithProfile("dark", termenv.Ascii)

	if !theme.NoColor() {
		t.Fatal("Ascii profile should report NoColor")
	}

	out := theme.UserBubble.Render("hello")
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no escape sequences, got %q", out)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Render = %q, want padded hello", out)
	}
}

func TestTrueColorBubblesDiffer(t *testing.T) {
	theme := NewThemeWithProfile("dark", termenv.TrueColor)

	user := theme.UserBubble.Render("x")
	bot := theme.BotBubble.Render("x")

	if !strings.Contains(user, "\x1b[") {
		t.Errorf("user bubble should be colored, got %q", user)
	}
	if user == bot {
		t.Error("user and bot bubbles should be styled differently")
	}
}

func TestNewThemeHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if theme := NewTheme("dark"); !theme.NoColor() {
		t.Error("NO_COLOR should force the Ascii profile")
	}
}

func TestSpinnersHaveFrames(t *testing.T) {
	for name, s := range map[string][]string{
		"line": LineSpinner.Frames,
		"dots": DotsSpinner.Frames,
	} {
		if len(s) == 0 {
			t.Errorf("%s spinner has no frames", name)
		}
	}
	if LineSpinner.FPS <= 0 || DotsSpinner.FPS <= 0 {
		t.Error("spinner FPS must be positive")
	}
}

func TestNewStyleUsesThemeProfile(t *testing.T) {
	plain := NewThemeWithProfile("dark", termenv.Ascii)
	if out := plain.NewStyle().Bold(true).Foreground(Accent).Render("x"); out != "x" {
		t.Errorf("Ascii theme style = %q, want plain x", out)
	}

	color := NewThemeWithProfile("dark", termenv.TrueColor)
	if out := color.NewStyle().Foreground(Accent).Render("x"); !strings.Contains(out, "\x1b[") {
		t.Errorf("TrueColor theme style = %q, want escape sequences", out)
	}
}
