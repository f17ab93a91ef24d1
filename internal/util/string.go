// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// TruncateWidth truncates s so it occupies at most maxWidth terminal
// columns, ellipsis included. Wide runes (CJK, emoji) count as 2 columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, ellipsis)
}

// StringWidth returns the number of terminal columns s occupies.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// SingleLine collapses newlines and tabs to spaces so s fits on one row.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
