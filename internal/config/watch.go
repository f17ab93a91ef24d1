// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// Watch reloads the config file at path whenever it changes and passes the
// new config to onChange. It blocks until ctx is done.
//
// The parent directory is watched rather than the file so that editors which
// save by rename are still seen. A file that fails to load is logged and
// skipped; onChange only ever receives valid configs.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := LoadFromPath(path)
			if err != nil {
				log.Printf("config: reload of %s failed: %v", path, err)
				continue
			}
			log.Printf("config: reloaded %s", path)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config: watch error: %v", err)
		}
	}
}
