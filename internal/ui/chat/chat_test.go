// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/carter/internal/completion"
	"github.com/jeranaias/carter/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	key     string
	reply   func(prompt string) completion.Result
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) completion.Result {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	reply := f.reply
	f.mu.Unlock()

	if reply != nil {
		return reply(prompt)
	}
	return completion.Result{Text: "echo: " + prompt}
}

func (f *fakeCompleter) SetAPIKey(key string) {
	f.mu.Lock()
	f.key = key
	f.mu.Unlock()
}

func (f *fakeCompleter) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func newTestModel(t *testing.T, width, height int) (Model, *fakeCompleter) {
	t.Helper()
	fake := &fakeCompleter{}
	m := New(styles.NewThemeWithProfile("dark", termenv.Ascii), fake)
	m, _ = update(m, tea.WindowSizeMsg{Width: width, Height: height})
	return m, fake
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(m Model, s string) Model {
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: tea.KeyEnter})
}

// run executes cmd, expanding batches, and returns every message produced.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// completionOf runs cmd and returns the CompletionMsg it yields.
func completionOf(t *testing.T, cmd tea.Cmd) CompletionMsg {
	t.Helper()
	for _, msg := range run(cmd) {
		if c, ok := msg.(CompletionMsg); ok {
			return c
		}
	}
	t.Fatal("command produced no CompletionMsg")
	return CompletionMsg{}
}

func texts(m Model) []string {
	var out []string
	for _, msg := range m.Session().Messages() {
		out = append(out, msg.Text())
	}
	return out
}

// =============================================================================
// SEND
// =============================================================================

func TestSend_AppendsUserMessageBeforeReply(t *testing.T) {
	m, fake := newTestModel(t, 80, 24)

	m = typeText(m, "Tell me a joke")
	assert.Equal(t, "Tell me a joke", m.Session().Input())

	m, cmd := pressEnter(m)
	require.NotNil(t, cmd)

	msgs := m.Session().Messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsUser())
	assert.Equal(t, "Tell me a joke", msgs[0].Text())
	assert.Equal(t, "", m.Session().Input())
	assert.Equal(t, "", m.input.Value())
	assert.Empty(t, fake.calls(), "request must not run on the UI loop")
	assert.Equal(t, 1, m.Pending())

	m, _ = update(m, completionOf(t, cmd))

	assert.Equal(t, []string{"Tell me a joke"}, fake.calls())
	assert.Equal(t, []string{"Tell me a joke", "echo: Tell me a joke"}, texts(m))
	assert.False(t, m.Session().Messages()[1].IsUser())
	assert.Equal(t, 0, m.Pending())
}

func TestSend_BlankInputIsSent(t *testing.T) {
	m, fake := newTestModel(t, 80, 24)

	m, cmd := pressEnter(m)
	require.Equal(t, 1, m.Session().Len())
	assert.Equal(t, "", m.Session().Messages()[0].Text())

	completionOf(t, cmd)
	assert.Equal(t, []string{""}, fake.calls())
}

func TestSend_ForwardsTextVerbatim(t *testing.T) {
	m, fake := newTestModel(t, 80, 24)

	m = typeText(m, "  spaced  ")
	_, cmd := pressEnter(m)
	completionOf(t, cmd)

	assert.Equal(t, []string{"  spaced  "}, fake.calls())
}

// =============================================================================
// REPLIES
// =============================================================================

func TestCompletion_DisplayText(t *testing.T) {
	tests := []struct {
		name   string
		result completion.Result
		want   string
		failed bool
	}{
		{"success", completion.Result{Text: "hello"}, "hello", false},
		{"malformed", completion.Result{Err: fmt.Errorf("%w: no choices", completion.ErrMalformedResponse)}, "Failed to get response", true},
		{"transport", completion.Result{Err: &completion.TransportError{Err: errors.New("timeout")}}, "Error: timeout", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, 80, 24)
			m, _ = update(m, CompletionMsg{Result: tt.result})

			require.Equal(t, 1, m.Session().Len())
			last, _ := m.Session().Last()
			assert.Equal(t, tt.want, last.Text())
			assert.False(t, last.IsUser())
			assert.Equal(t, tt.failed, strings.Contains(m.renderStatusBar(), "last request failed"))
		})
	}
}

func TestCompletion_ArrivalOrderIsAppendOnly(t *testing.T) {
	prompts := []string{"one", "two", "three", "four"}

	for seed := int64(0); seed < 8; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			m, _ := newTestModel(t, 80, 24)

			var cmds []tea.Cmd
			for _, p := range prompts {
				m = typeText(m, p)
				var cmd tea.Cmd
				m, cmd = pressEnter(m)
				cmds = append(cmds, cmd)
			}
			require.Equal(t, prompts, texts(m))
			require.Equal(t, len(prompts), m.Pending())

			order := rand.New(rand.NewSource(seed)).Perm(len(cmds))
			want := append([]string(nil), prompts...)
			for _, i := range order {
				before := texts(m)
				m, _ = update(m, completionOf(t, cmds[i]))
				after := texts(m)

				require.Len(t, after, len(before)+1)
				assert.Equal(t, before, after[:len(before)], "existing messages must not move")
				want = append(want, "echo: "+prompts[i])
			}

			assert.Equal(t, want, texts(m))
			assert.Equal(t, 0, m.Pending())
		})
	}
}

func TestAPIKeyChanged_RotatesClientKey(t *testing.T) {
	m, fake := newTestModel(t, 80, 24)

	m, cmd := update(m, APIKeyChangedMsg{Key: "sk-rotated"})
	assert.Nil(t, cmd)
	assert.Equal(t, "sk-rotated", fake.key)
	assert.Equal(t, 0, m.Session().Len())
}

// =============================================================================
// SPINNER
// =============================================================================

func TestSpinner_RunsOnlyWhilePending(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)

	m = typeText(m, "hi")
	m, cmd := pressEnter(m)
	assert.Contains(t, m.renderStatusBar(), "waiting for 1 reply")

	var tick spinner.TickMsg
	var reply CompletionMsg
	for _, msg := range run(cmd) {
		switch msg := msg.(type) {
		case spinner.TickMsg:
			tick = msg
		case CompletionMsg:
			reply = msg
		}
	}

	_, next := update(m, tick)
	assert.NotNil(t, next, "spinner keeps ticking while a reply is pending")

	m, _ = update(m, reply)
	_, next = update(m, tick)
	assert.Nil(t, next, "spinner stops once nothing is pending")
	assert.NotContains(t, m.renderStatusBar(), "waiting")
}

// =============================================================================
// KEYS
// =============================================================================

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m, _ := newTestModel(t, 80, 24)
		_, cmd := update(m, tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestScrollKeys(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)

	for i := 0; i < 20; i++ {
		m = typeText(m, fmt.Sprintf("message %d", i))
		var cmd tea.Cmd
		m, cmd = pressEnter(m)
		m, _ = update(m, completionOf(t, cmd))
	}
	require.True(t, m.viewport.AtBottom())
	bottom := m.viewport.YOffset

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Less(t, m.viewport.YOffset, bottom)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, bottom, m.viewport.YOffset)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, bottom-1, m.viewport.YOffset)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, bottom, m.viewport.YOffset)

	assert.Equal(t, "", m.Session().Input(), "scroll keys must not reach the input")
}

// =============================================================================
// VIEW
// =============================================================================

func TestView_Deterministic(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)
	m = typeText(m, "hi")
	m, cmd := pressEnter(m)
	m, _ = update(m, completionOf(t, cmd))

	first := m.View()
	second := m.View()

	assert.Equal(t, first, second)
	assert.Contains(t, first, sendLabel)
	assert.Contains(t, first, "echo: hi")
}

func TestView_FillsWindow(t *testing.T) {
	for _, size := range [][2]int{{80, 24}, {120, 40}, {40, 12}} {
		m, _ := newTestModel(t, size[0], size[1])
		m = typeText(m, "hello there")
		m, cmd := pressEnter(m)
		m, _ = update(m, completionOf(t, cmd))

		view := m.View()
		assert.Equal(t, size[1], lipgloss.Height(view), "height for %v", size)
		assert.LessOrEqual(t, lipgloss.Width(view), size[0], "width for %v", size)
	}
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m := New(styles.NewThemeWithProfile("dark", termenv.Ascii), &fakeCompleter{})
	assert.Equal(t, "Loading...", m.View())
}

func TestRenderMessages_Alignment(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)
	m = typeText(m, "hi")
	m, cmd := pressEnter(m)
	m, _ = update(m, completionOf(t, cmd))

	lines := strings.Split(m.renderMessages(), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, strings.Repeat(" ", 76)+" hi ", lines[0], "user bubble hugs the right edge")
	assert.Equal(t, "", lines[1])
	assert.Equal(t, " echo: hi ", lines[2], "bot bubble hugs the left edge")
}

func TestRenderMessages_BubbleWidth(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 8)

	tests := []struct {
		name        string
		width       int
		bubbleWidth int
		wantMax     int
	}{
		{"configured cap", 80, 30, 30},
		{"default cap", 120, DefaultBubbleWidth, DefaultBubbleWidth},
		{"narrow terminal", 30, DefaultBubbleWidth, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, tt.width, 24)
			m.SetBubbleWidth(tt.bubbleWidth)
			m, _ = update(m, CompletionMsg{Result: completion.Result{Text: long}})
			m = typeText(m, long)
			m, _ = pressEnter(m)

			for _, line := range strings.Split(m.renderMessages(), "\n") {
				assert.LessOrEqual(t, lipgloss.Width(line), tt.width)
				assert.LessOrEqual(t, lipgloss.Width(strings.TrimLeft(line, " ")), tt.wantMax)
			}
		})
	}
}

func TestRenderMessages_EmptyHint(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)
	assert.Contains(t, m.renderMessages(), "Say something")
}

// =============================================================================
// WRAPPING
// =============================================================================

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"break at space", "hello world", 5, "hello\nworld"},
		{"several spaces", "a b c d", 3, "a b\nc d"},
		{"long word", "abcdefghij", 4, "abcd\nefgh\nij"},
		{"wide runes", "日本語", 4, "日本\n語"},
		{"keeps newlines", "one\ntwo", 10, "one\ntwo"},
		{"empty", "", 5, ""},
		{"no limit", "hello world", 0, "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.input, tt.maxWidth))
		})
	}
}
