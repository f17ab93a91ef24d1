// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/carter/internal/util"
)

// wrapText wraps text to maxWidth display columns, breaking at spaces where
// possible. Existing newlines are kept.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wrapLine(strings.ReplaceAll(line, "\t", "    "), maxWidth)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, maxWidth int) string {
	var result strings.Builder
	runes := []rune(line)

	for util.StringWidth(string(runes)) > maxWidth {
		// Longest prefix that fits.
		cut, width := 0, 0
		for cut < len(runes) {
			w := runewidth.RuneWidth(runes[cut])
			if width+w > maxWidth {
				break
			}
			width += w
			cut++
		}
		if cut == 0 {
			cut = 1
		}

		breakPoint := cut
		for j := cut; j > 0; j-- {
			if j < len(runes) && runes[j] == ' ' {
				breakPoint = j
				break
			}
		}

		result.WriteString(string(runes[:breakPoint]))
		result.WriteString("\n")
		runes = []rune(strings.TrimLeft(string(runes[breakPoint:]), " "))
	}
	result.WriteString(string(runes))

	return result.String()
}
