// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carter/internal/completion"
	"github.com/jeranaias/carter/internal/model"
	"github.com/jeranaias/carter/internal/ui/styles"
)

// DefaultBubbleWidth is the widest a message bubble may be, in columns.
const DefaultBubbleWidth = 50

// Completer produces a reply for a prompt. *completion.Client implements it.
type Completer interface {
	Complete(ctx context.Context, prompt string) completion.Result
}

// keySetter is implemented by completers whose credential can be rotated.
type keySetter interface {
	SetAPIKey(key string)
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
// All state changes happen in Update, on the UI loop.
type Model struct {
	session *model.Session
	client  Completer
	ctx     context.Context

	theme    *styles.Theme
	keys     KeyMap
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width       int
	height      int
	bubbleWidth int

	// pending counts requests sent but not yet answered.
	pending int
	// lastFailed is set when the most recent reply was a failure.
	lastFailed bool
	lastReply  model.Message
}

// New creates a chat model that sends prompts to client.
func New(theme *styles.Theme, client Completer) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = theme.InputText
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = styles.DotsSpinner
	if theme.NoColor() {
		sp.Spinner = styles.LineSpinner
	}
	sp.Style = theme.Spinner

	m := Model{
		session:     model.NewSession(),
		client:      client,
		ctx:         context.Background(),
		theme:       theme,
		keys:        DefaultKeyMap(),
		viewport:    vp,
		input:       ti,
		spinner:     sp,
		bubbleWidth: DefaultBubbleWidth,
	}
	m.updateViewport()
	return m
}

// SetBubbleWidth caps the width of message bubbles.
func (m *Model) SetBubbleWidth(width int) {
	if width > 0 {
		m.bubbleWidth = width
		m.updateViewport()
	}
}

// SetContext sets the context completion requests run under.
func (m *Model) SetContext(ctx context.Context) {
	m.ctx = ctx
}

// Session returns the conversation state.
func (m *Model) Session() *model.Session {
	return m.session
}

// Pending returns the number of replies still outstanding.
func (m *Model) Pending() int {
	return m.pending
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case CompletionMsg:
		return m.handleCompletion(msg)

	case APIKeyChangedMsg:
		if ks, ok := m.client.(keySetter); ok {
			ks.SetAPIKey(msg.Key)
			log.Printf("chat: API key rotated")
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat interface.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	inputWidth := m.width - lipgloss.Width(m.input.Prompt) - lipgloss.Width(sendLabel) - 3
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	reserved := lipgloss.Height(m.renderHeader()) +
		lipgloss.Height(m.renderInput()) +
		lipgloss.Height(m.renderStatusBar())

	viewportHeight := m.height - reserved
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	viewportWidth := m.width
	if viewportWidth < 1 {
		viewportWidth = 1
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.Width = viewportWidth
	m.viewport.Height = viewportHeight

	m.updateViewport()
	if atBottom {
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyRunes:
		// Typed or pasted text, even text that spells a binding name.

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		cmd := m.Send()
		return m, cmd

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

// handleCompletion appends the reply. Replies land in arrival order, which
// may differ from the order the prompts were sent.
func (m Model) handleCompletion(msg CompletionMsg) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}
	m.lastFailed = !msg.Result.OK()

	if m.lastFailed {
		log.Printf("chat: reply failed: %v (%d pending)", msg.Result.Err, m.pending)
	} else {
		log.Printf("chat: reply received, %d chars (%d pending)", len(msg.Result.Text), m.pending)
	}

	atBottom := m.viewport.AtBottom()
	m.lastReply = model.NewBotMessage(msg.Result.DisplayText())
	m.session.Append(m.lastReply)
	m.updateViewport()
	if atBottom {
		m.viewport.GotoBottom()
	}
	return m, nil
}

// updateViewport re-renders the message list into the viewport.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
}
