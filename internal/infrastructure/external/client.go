// Package external implements the third-party text tools used by the
// editor: OpenAI rewriting, LanguageTool grammar checks, GPTZero AI
// detection and the research suggestion placeholder.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oksasatya/heart-api/internal/domain"
)

const (
	DefaultTimeout = 30 * time.Second
	maxErrorBody   = 4 << 10
)

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// do sends req and decodes a 2xx JSON body into out. Any failure is an
// UpstreamError carrying message as the client-facing text.
func do(client *http.Client, req *http.Request, service, message string, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return &domain.UpstreamError{Service: service, Message: message, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.UpstreamError{Service: service, Message: message, Err: errors.New(errorDetail(resp.StatusCode, body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.UpstreamError{Service: service, Message: message, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func postJSON(ctx context.Context, url string, payload any) (*http.Request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// errorDetail pulls a readable message out of common error payloads:
// {"error":{"message":...}}, {"error":"..."} and {"message":"..."}.
func errorDetail(status int, body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &nested) == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}
	var flat struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &flat) == nil {
		if flat.Error != "" {
			return flat.Error
		}
		if flat.Message != "" {
			return flat.Message
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return fmt.Sprintf("status %d: %s", status, s)
	}
	return fmt.Sprintf("status %d", status)
}
