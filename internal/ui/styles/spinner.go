// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// LineSpinner is a simple ASCII line rotation.
var LineSpinner = spinner.Spinner{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    time.Second / 10,
}

// DotsSpinner is the classic three-dot animation shown while replies are pending.
var DotsSpinner = spinner.Spinner{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    time.Second / 6,
}
