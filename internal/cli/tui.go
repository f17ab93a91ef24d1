// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/carter/internal/completion"
	"github.com/jeranaias/carter/internal/config"
	"github.com/jeranaias/carter/internal/ui/chat"
	"github.com/jeranaias/carter/internal/ui/styles"
)

// runTUI starts the full-screen chat.
func runTUI(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg, true, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	client := newClient(cfg)
	warnIfUnconfigured(cmd.ErrOrStderr(), client)
	log.Printf("tui: starting (endpoint %s, key %s)", client.Endpoint(), client.APIKeyMasked())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := chat.New(styles.NewTheme(cfg.UI.Theme), client)
	m.SetBubbleWidth(cfg.UI.BubbleWidth)
	m.SetContext(ctx)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if path, err := opts.configFile(); err == nil {
		go watchConfig(ctx, path, p)
	}

	_, err = p.Run()
	return err
}

// watchConfig keeps the global config in step with the file and forwards
// key changes to the running program.
func watchConfig(ctx context.Context, path string, p *tea.Program) {
	err := config.Watch(ctx, path, func(cfg *config.Config) {
		applyConfigChange(cfg, p.Send)
	})
	if err != nil {
		log.Printf("tui: not watching %s: %v", path, err)
	}
}

// applyConfigChange replaces the global config and sends an
// APIKeyChangedMsg when the key differs from the one in use.
func applyConfigChange(cfg *config.Config, send func(tea.Msg)) {
	prev := config.Global()
	config.SetGlobal(cfg)
	if prev != nil && prev.API.Key == cfg.API.Key {
		return
	}
	log.Printf("tui: api key changed (fingerprint %s)", completion.NewClient(cfg.API.Key).KeyFingerprint())
	send(chat.APIKeyChangedMsg{Key: cfg.API.Key})
}
