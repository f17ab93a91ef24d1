// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the carter packages.
//
//   - TruncateWidth, StringWidth: terminal-column aware string helpers
//   - AtomicWriteFileWithDir: crash-safe writes for the config and history files
package util
