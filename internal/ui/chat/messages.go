// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/carter/internal/completion"

// CompletionMsg delivers the outcome of one completion request.
type CompletionMsg struct {
	Result completion.Result
}

// APIKeyChangedMsg carries a rotated API key, typically from a config reload.
type APIKeyChangedMsg struct {
	Key string
}
