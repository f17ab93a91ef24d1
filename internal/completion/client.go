// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Request parameters and endpoint defaults.
const (
	// DefaultEndpoint is the OpenAI legacy completions endpoint.
	DefaultEndpoint = "https://api.openai.com/v1/completions"

	// DefaultModel is the completion model identifier.
	DefaultModel = "text-davinci-003"

	// DefaultMaxTokens caps the length of each reply.
	DefaultMaxTokens = 150

	// DefaultTemperature is the sampling temperature.
	DefaultTemperature = 0.7

	// MaxResponseSize is the maximum response body read into memory.
	MaxResponseSize = 10 * 1024 * 1024
)

// newHTTPClient returns a client with no overall timeout; a request only
// ends when the server answers, the connection drops or ctx is done.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends prompts to the completions endpoint.
// It is safe for concurrent use; several calls may be in flight at once.
type Client struct {
	mu     sync.RWMutex
	apiKey string

	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the default endpoint with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		endpoint:   DefaultEndpoint,
		httpClient: newHTTPClient(),
	}
}

// WithEndpoint sets the URL requests are POSTed to.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = strings.TrimSuffix(endpoint, "/")
	return c
}

// WithTimeout bounds each request. Zero means no timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// SetAPIKey swaps the bearer credential. Requests already in flight keep
// the key they started with.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.apiKey = strings.TrimSpace(apiKey)
	c.mu.Unlock()
}

func (c *Client) key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// IsConfigured returns true if an API key is set.
func (c *Client) IsConfigured() bool {
	return c.key() != ""
}

// APIKeyMasked returns a display form of the key that reveals no part of it.
func (c *Client) APIKeyMasked() string {
	k := c.key()
	if k == "" {
		return "[not set]"
	}
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(k), fingerprint(k))
}

// KeyFingerprint returns the first 8 hex chars of the key's SHA-256.
func (c *Client) KeyFingerprint() string {
	return fingerprint(c.key())
}

func fingerprint(key string) string {
	if key == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:4])
}

// =============================================================================
// COMPLETE
// =============================================================================

// Complete sends prompt verbatim and returns the first completion.
// Exactly one request is made per call.
func (c *Client) Complete(ctx context.Context, prompt string) Result {
	body, err := c.post(ctx, NewRequest(prompt))
	if err != nil {
		return Result{Err: err}
	}

	text, err := ParseResponse(body)
	if err != nil {
		log.Printf("completion: %v", err)
		return Result{Err: err}
	}
	return Result{Text: text}
}

// post performs the request and returns the raw body regardless of status.
// Error bodies from the API lack choices and surface as malformed responses.
func (c *Client) post(ctx context.Context, reqBody Request) ([]byte, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.key())
	req.Header.Set("Content-Type", "application/json")

	log.Printf("API Request: %s %s (key %s)", req.Method, req.URL.Path, c.KeyFingerprint())
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	req.Header.Del("Authorization")
	if err != nil {
		log.Printf("API Request failed after %v: %v", time.Since(start), err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	log.Printf("API Response: %s (%v)", resp.Status, time.Since(start))

	return readResponse(resp)
}

// readResponse reads the body up to MaxResponseSize. A body that was
// delivered but is too large to use counts as malformed.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if int64(len(body)) > MaxResponseSize {
		log.Printf("completion: response exceeded %d bytes", MaxResponseSize)
		return nil, fmt.Errorf("%w: response exceeded maximum size of %d bytes", ErrMalformedResponse, MaxResponseSize)
	}
	return body, nil
}
