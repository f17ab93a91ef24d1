// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/carter/internal/config"
)

// setupLogging points the standard logger at the right place.
//
// The TUI owns the terminal, so it logs to cfg.LogPath() or nowhere.
// Line-oriented commands log to stderr in debug mode and are silent otherwise.
// The returned func closes any file that was opened.
func setupLogging(cfg *config.Config, tui bool, stderr io.Writer) (func(), error) {
	noop := func() {}
	path := cfg.LogPath()

	if !tui {
		if cfg.Log.Debug {
			log.SetOutput(stderr)
		} else {
			log.SetOutput(io.Discard)
		}
		return noop, nil
	}

	if path == "" {
		log.SetOutput(io.Discard)
		return noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "carter")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() { f.Close() }, nil
}
