// internal/hcm/client.go
package hcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrbridge/pkg/metrics"
)

// TokenSource supplies a currently-valid bearer token for outbound calls.
// Satisfied by *auth.Manager.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client issues authenticated requests against the HR platform's REST and
// SOAP surfaces. All tool handlers funnel through it.
type Client struct {
	restBase string
	soapBase string
	http     *http.Client
	tokens   TokenSource
	log      *zap.SugaredLogger
}

func NewClient(restBase, soapBase string, tokens TokenSource, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		restBase: strings.TrimRight(restBase, "/"),
		soapBase: strings.TrimRight(soapBase, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		tokens:   tokens,
		log:      log,
	}
}

// APIError is a non-2xx vendor response, body preserved for diagnostics.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("hr api returned %d: %s", e.Status, body)
}

// Do sends one REST request. A token failure aborts before any vendor call
// is attempted. The decoded JSON body is returned for 2xx responses.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("authorization failed: %w", err)
	}

	full := c.restBase + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, full, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.VendorRequestSeconds.WithLabelValues(method, "transport_error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("hr api unreachable: %w", err)
	}
	defer resp.Body.Close()
	respBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	metrics.VendorRequestSeconds.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBytes)}
	}
	if len(respBytes) == 0 {
		return map[string]any{"status": resp.StatusCode}, nil
	}
	var decoded any
	if err := json.Unmarshal(respBytes, &decoded); err != nil {
		// some endpoints return plain text on success
		return string(respBytes), nil
	}
	return decoded, nil
}
