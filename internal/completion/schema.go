// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Request is the body POSTed to the completions endpoint.
type Request struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// NewRequest builds a request for prompt with the fixed model parameters.
func NewRequest(prompt string) Request {
	return Request{
		Model:       DefaultModel,
		Prompt:      prompt,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// Choice is one generated completion.
// Text is a pointer so a missing field can be told apart from "".
type Choice struct {
	Text *string `json:"text"`
}

// Response is the subset of the completions response carter reads.
type Response struct {
	Choices []Choice `json:"choices"`
}

// ParseResponse validates body against Response and returns the first
// choice's text, trimmed of surrounding whitespace and newlines.
// Any deviation from the expected shape yields ErrMalformedResponse.
func ParseResponse(body []byte) (string, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	if resp.Choices[0].Text == nil {
		return "", fmt.Errorf("%w: first choice has no text", ErrMalformedResponse)
	}
	return strings.TrimSpace(*resp.Choices[0].Text), nil
}
