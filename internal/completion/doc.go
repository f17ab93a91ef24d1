// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package completion talks to an OpenAI-style text completion endpoint.
//
// One call to Complete issues exactly one POST. There is no retry, no
// backoff and no caching. Failures come back inside the Result rather than
// as a second return value, and fall into two kinds:
//
//   - ErrTransport: the request could not be sent or the body not read
//   - ErrMalformedResponse: the body has no usable choices[0].text
//
// # Usage
//
//	client := completion.NewClient(apiKey)
//	res := client.Complete(ctx, "Say hello")
//	fmt.Println(res.DisplayText())
//
// API keys are never logged; use KeyFingerprint to correlate log lines.
package completion
