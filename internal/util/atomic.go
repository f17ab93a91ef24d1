// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFileWithDir replaces path with data so that readers see
// either the old contents or the new ones. Missing parent directories are
// created with dirPerm; the file ends up with perm.
func AtomicWriteFileWithDir(path string, data []byte, perm, dirPerm os.FileMode) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	tempPath, err := writeTemp(dir, data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// writeTemp writes data to a synced, closed temp file in dir and returns
// its name. The temp file is removed on any error.
func writeTemp(dir string, data []byte, perm os.FileMode) (name string, err error) {
	f, err := os.CreateTemp(dir, ".tmp-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name = f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(name)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return "", fmt.Errorf("failed to write data: %w", err)
	}
	if err = f.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync data to disk: %w", err)
	}
	if err = f.Chmod(perm); err != nil {
		return "", fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return name, nil
}
