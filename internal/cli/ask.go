// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <prompt...>",
		Short: "Print a single reply",
		Long: `Send one prompt and print the reply.

The words of the prompt are joined with single spaces. With no arguments the
prompt is read from stdin, so carter can sit at the end of a pipe:

  carter ask "Tell me a joke"
  echo "Summarize: $(cat notes.txt)" | carter ask

Trailing newlines on stdin (like the one echo adds) are dropped; everything
else, leading and trailing spaces included, is sent as is.

When stdout is a terminal the reply is rendered as markdown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, args)
		},
	}
}

func runAsk(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, false, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	prompt, err := readPrompt(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	warnIfUnconfigured(cmd.ErrOrStderr(), client)

	result := client.Complete(cmd.Context(), prompt)
	if !result.OK() {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render(result.DisplayText()))
		return &ReplyError{Result: result}
	}

	displayResponse(cmd.OutOrStdout(), result.Text)
	return nil
}

// readPrompt joins args, or reads stdin when there are none and stdin is
// not a terminal. Only the trailing newlines of piped input are removed.
func readPrompt(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok && isTerminal(f) {
		return "", errors.New("no prompt given; usage: carter ask <prompt...>")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Printf("markdown renderer unavailable: %v", err)
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse writes a reply to w, rendering markdown only when w is a
// terminal so piped output stays byte-for-byte.
func displayResponse(w io.Writer, response string) {
	if isTerminal(w) && ColorsEnabled() {
		fmt.Fprint(w, renderMarkdown(response, GetTerminalWidth()-2))
		return
	}
	fmt.Fprintln(w, response)
}
