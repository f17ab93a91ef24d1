// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"errors"
	"net/url"
)

// FailedResponseText is shown in place of a reply whose body could not be used.
const FailedResponseText = "Failed to get response"

var (
	// ErrTransport indicates the request never produced a readable body.
	ErrTransport = errors.New("transport error")

	// ErrMalformedResponse indicates the body was not the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// TransportError carries the network-level cause of a failed request.
// It matches ErrTransport with errors.Is.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return ErrTransport.Error() + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Description returns the cause without the request URL noise that
// *url.Error adds.
func (e *TransportError) Description() string {
	var urlErr *url.Error
	if errors.As(e.Err, &urlErr) {
		return urlErr.Err.Error()
	}
	return e.Err.Error()
}

// Result is the outcome of one Complete call.
type Result struct {
	// Text is the trimmed completion; empty when Err is set.
	Text string
	// Err is nil on success, otherwise matches ErrTransport or ErrMalformedResponse.
	Err error
}

// OK reports whether the call produced a completion.
func (r Result) OK() bool {
	return r.Err == nil
}

// DisplayText returns what the conversation shows for this result.
func (r Result) DisplayText() string {
	if r.Err == nil {
		return r.Text
	}

	var te *TransportError
	if errors.As(r.Err, &te) {
		return "Error: " + te.Description()
	}
	if errors.Is(r.Err, ErrTransport) {
		return "Error: " + r.Err.Error()
	}
	return FailedResponseText
}
