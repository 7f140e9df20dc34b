// Package gateway is the typed HTTP client for the remote commerce platform.
// It owns transport concerns only: request building, the fixed timeout, and
// deciding the error taxonomy (validation / general / network) exactly once
// per response. No pricing or stock logic lives here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-engine/internal/domain"
)

// Client talks to the remote platform. All methods return either a typed
// payload or a *domain.RemoteError.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
}

// New builds a Client with a fixed request timeout.
func New(baseURL string, timeout time.Duration, logger *log.Logger) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}, nil
}

// validationBody is the 422-class wire shape: {"errors": {field: [messages]}}.
type validationBody struct {
	Errors map[string][]string `json:"errors"`
}

// generalBody is the wire shape of every other structured failure.
type generalBody struct {
	Message string `json:"message"`
}

// do issues one request and settles it into out or a RemoteError. Mutating
// requests carry a fresh idempotency key so the platform can absorb retries.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.GeneralError(fmt.Sprintf("encode request: %v", err))
		}
		reqBody = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return domain.GeneralError(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("%s %s: %v", method, path, err)
		}
		return domain.NetworkError(fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NetworkError(fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return domain.NetworkError(fmt.Sprintf("decode response: %v", err))
		}
		return nil
	}

	return decodeFailure(resp.StatusCode, raw)
}

// decodeFailure settles a non-2xx response into the error taxonomy:
// 422 with a field map is validation, a structured {message} is general,
// anything unstructured is network (no server payload to trust).
func decodeFailure(status int, raw []byte) *domain.RemoteError {
	if status == http.StatusUnprocessableEntity {
		var vb validationBody
		if err := json.Unmarshal(raw, &vb); err == nil && len(vb.Errors) > 0 {
			return domain.ValidationError(vb.Errors)
		}
	}
	var gb generalBody
	if err := json.Unmarshal(raw, &gb); err == nil && gb.Message != "" {
		return domain.GeneralError(gb.Message)
	}
	return domain.NetworkError(fmt.Sprintf("remote returned status %d", status))
}
