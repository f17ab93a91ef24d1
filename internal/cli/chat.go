// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/carter/internal/config"
	"github.com/jeranaias/carter/internal/model"
	"github.com/jeranaias/carter/internal/ui/chat"
	"github.com/jeranaias/carter/internal/util"
)

func newChatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Line-based chat with input history",
		Long: `Start a line-based chat. Each line you enter is sent as one message and
the reply is printed below it. Up/Down recall earlier input.

  /quit, /q   Exit
  Ctrl+D      Exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

func runChat(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, false, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	client := newClient(cfg)
	out := cmd.OutOrStdout()
	warnIfUnconfigured(cmd.ErrOrStderr(), client)

	input := NewChatCLI()
	defer input.Close()

	fmt.Fprintln(out, InfoStyle.Render("carter chat - /quit or Ctrl+D to exit"))
	return runChatLoop(cmd.Context(), input, out, client, model.NewSession())
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for the chat command.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI and loads saved history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line of input. Non-blank lines are added to history.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with config file permissions.
func (c *ChatCLI) SaveHistory() {
	var buf bytes.Buffer
	if _, err := c.line.WriteHistory(&buf); err != nil {
		log.Printf("chat: failed to save history: %v", err)
		return
	}
	if err := util.AtomicWriteFileWithDir(c.historyFile, buf.Bytes(), config.FilePerm, config.DirPerm); err != nil {
		log.Printf("chat: failed to save history: %v", err)
	}
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// LOOP
// =============================================================================

// lineReader is the part of ChatCLI the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// runChatLoop reads lines until EOF, /quit or ctx is done. Every other
// line, blank ones included, is appended to session and sent verbatim; the
// reply (or its failure text) is appended and printed.
func runChatLoop(ctx context.Context, in lineReader, out io.Writer, client chat.Completer, session *model.Session) error {
	prompt := PromptStyle.Render("you>") + " "

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := in.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.TrimSpace(line) {
		case "/quit", "/q", "/exit":
			return nil
		}

		session.SetInput(line)
		session.Append(model.NewUserMessage(session.Input()))
		session.ClearInput()

		result := client.Complete(ctx, line)
		reply := model.NewBotMessage(result.DisplayText())
		session.Append(reply)

		label := BotStyle.Render("bot>")
		if !result.OK() {
			fmt.Fprintln(out, label, ErrorStyle.Render(reply.Text()))
			continue
		}
		if isTerminal(out) && ColorsEnabled() {
			fmt.Fprintln(out, label)
			fmt.Fprint(out, renderMarkdown(reply.Text(), GetTerminalWidth()-2))
			continue
		}
		fmt.Fprintln(out, label, reply.Text())
	}
}
