// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/carter/internal/model"
)

// Send submits the current input verbatim, blank input included.
//
// The user message is appended and the input cleared before this returns;
// the returned command performs the request and yields a CompletionMsg.
func (m *Model) Send() tea.Cmd {
	text := m.input.Value()

	m.session.Append(model.NewUserMessage(text))
	m.session.ClearInput()
	m.input.Reset()

	m.pending++
	log.Printf("chat: sending %d chars (%d pending)", len(text), m.pending)

	m.updateViewport()
	m.viewport.GotoBottom()

	cmds := []tea.Cmd{m.complete(text)}
	if m.pending == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// complete returns a command that runs one completion off the UI loop.
func (m *Model) complete(prompt string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		return CompletionMsg{Result: client.Complete(ctx, prompt)}
	}
}
