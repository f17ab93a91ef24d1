// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/carter/internal/completion"
	"github.com/jeranaias/carter/internal/config"
)

// options holds the global flags.
type options struct {
	configPath string
	endpoint   string
	debug      bool
}

// NewRootCmd builds the carter command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "carter",
		Short: "carter - chat with a text completion model",
		Long: `carter is a terminal chat client for OpenAI-style text completion APIs.
Each message you send is forwarded to the completion endpoint and the reply
is shown as a bot message.

  carter                          Start the chat TUI
  carter ask "capital of France?" Print a single reply
  carter chat                     Line-based chat with history
  carter config init              Write a default config file

The API key is read from ~/.carter/config.toml, CARTER_API_KEY or
OPENAI_API_KEY.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.carter/config.toml)")
	flags.StringVar(&opts.endpoint, "endpoint", "", "completions endpoint URL")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(newAskCmd(opts))
	root.AddCommand(newChatCmd(opts))
	root.AddCommand(newConfigCmd(opts))

	return root
}

// Execute runs the command tree against os.Args and returns the exit code.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(version)
	if err := root.ExecuteContext(ctx); err != nil {
		displayError(root.ErrOrStderr(), err)
		return ExitGeneralError
	}
	return ExitSuccess
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig loads the configuration and applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.endpoint != "" {
		cfg.API.Endpoint = o.endpoint
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --endpoint: %w", err)
		}
	}
	if o.debug {
		cfg.Log.Debug = true
	}

	config.SetGlobal(cfg)
	return cfg, nil
}

// configFile returns the config file in effect.
func (o *options) configFile() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.ActivePath()
}

// newClient creates a completion client from cfg.
func newClient(cfg *config.Config) *completion.Client {
	return completion.NewClient(cfg.API.Key).
		WithEndpoint(cfg.API.Endpoint).
		WithTimeout(cfg.Timeout())
}

// warnIfUnconfigured prints a hint when no API key is set. Requests are
// still sent and will come back as failed replies.
func warnIfUnconfigured(w io.Writer, client *completion.Client) {
	if client.IsConfigured() {
		return
	}
	fmt.Fprintln(w, WarningStyle.Render(
		"Warning: no API key set; export CARTER_API_KEY or OPENAI_API_KEY, or run 'carter config init'"))
}
