// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carter/internal/completion"
	"github.com/jeranaias/carter/internal/model"
)

const (
	sendLabel = "[ Send ]"

	// gutter is the minimum gap between a bubble and the far edge.
	gutter = 1

	failurePreviewWidth = 40
)

// =============================================================================
// LAYOUT
// =============================================================================

// renderChat stacks header, messages, input and status bar.
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderInput(),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("carter")
	subtitle := m.theme.HeaderSubtitle.Render(completion.DefaultModel)

	return m.theme.Header.
		Width(m.width).
		MaxWidth(m.width).
		Render(title + "  " + subtitle)
}

// =============================================================================
// MESSAGES
// =============================================================================

func (m Model) renderMessages() string {
	if m.session.IsEmpty() {
		return m.theme.EmptyHint.Render("Say something to start the conversation.")
	}

	messages := m.session.Messages()
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, m.renderMessage(msg))
	}
	return strings.Join(parts, "\n\n")
}

// renderMessage draws one bubble: user messages hug the right edge,
// bot messages the left, each leaving a gutter on the opposite side.
func (m Model) renderMessage(msg model.Message) string {
	style := m.theme.BotBubble
	if msg.IsUser() {
		style = m.theme.UserBubble
	}

	maxWidth := m.bubbleMaxWidth()
	textWidth := maxWidth - style.GetHorizontalFrameSize()
	if textWidth < 1 {
		textWidth = 1
	}
	bubble := style.Render(wrapText(msg.Text(), textWidth))

	if msg.IsUser() {
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, bubble)
	}
	return bubble
}

// bubbleMaxWidth is the configured bubble width clamped to the viewport.
func (m Model) bubbleMaxWidth() int {
	w := m.bubbleWidth
	if avail := m.viewport.Width - gutter; w > avail {
		w = avail
	}
	if w < 4 {
		w = 4
	}
	return w
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

func (m Model) renderInput() string {
	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.input.View(),
		" ",
		m.theme.SendButton.Render(sendLabel),
	)

	return m.theme.InputContainer.
		Width(m.width).
		MaxWidth(m.width).
		Render(line)
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.pending > 0:
		left = fmt.Sprintf("%s waiting for %d %s", m.spinner.View(), m.pending, plural(m.pending, "reply", "replies"))
	case m.lastFailed:
		left = m.theme.StatusError.Render("last request failed: " + m.lastReply.Preview(failurePreviewWidth))
	default:
		hints := make([]string, 0, 4)
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			hints = append(hints, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
		}
		left = strings.Join(hints, "  ")
	}

	n := m.session.Len()
	right := fmt.Sprintf("%d %s", n, plural(n, "message", "messages"))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - m.theme.StatusBar.GetHorizontalFrameSize()
	if gap < 1 {
		gap = 1
	}

	return m.theme.StatusBar.
		MaxWidth(m.width).
		Render(left + strings.Repeat(" ", gap) + right)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
