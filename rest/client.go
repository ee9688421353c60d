// Package rest is the HTTP client for the chat API: typed endpoints behind
// the header-driven rate limiter.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/rest/ratelimit"
)

// DefaultBaseURL is the versioned API root.
const DefaultBaseURL = "https://discordapp.com/api/v6"

const userAgent = "DiscordBot (https://github.com/parsascontentcorner/discordlite, 0.1)"

// Client issues API requests. All endpoint methods route through the rate
// limiter and are safe for concurrent use.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	token      string
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a client authenticating with the given token. Bot
// tokens carry their "Bot " prefix.
func NewClient(token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    ratelimit.NewLimiter(logger.Named("ratelimit")),
		token:      token,
		baseURL:    DefaultBaseURL,
		logger:     logger,
	}
}

// do performs one rate-limited request. A nil body sends no payload;
// otherwise body is marshalled to JSON fresh on every attempt.
func (c *Client) do(ctx context.Context, method, path string, route ratelimit.Route, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	send := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader(payload))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", c.token)
		req.Header.Set("User-Agent", userAgent)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil && isAborted(err) {
			// Aborted connections get one transparent retry before the
			// error surfaces.
			c.logger.Debug("retrying aborted request",
				zap.String("method", method),
				zap.String("path", path),
			)
			req2, err2 := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader(payload))
			if err2 != nil {
				return nil, fmt.Errorf("build request: %w", err2)
			}
			req2.Header = req.Header.Clone()
			return c.httpClient.Do(req2)
		}
		return resp, err
	}

	resp, err := c.limiter.Perform(ctx, route, send)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func bodyReader(payload []byte) io.Reader {
	if payload == nil {
		return nil
	}
	return bytes.NewReader(payload)
}

// isAborted reports whether the transport error indicates the connection
// was torn down mid-request, typically a stale keep-alive.
func isAborted(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) && strings.Contains(netErr.Err.Error(), "connection reset") {
		return true
	}
	return false
}

// Verify consumes the response body and checks the status code, returning
// an UnexpectedStatusError carrying the body on mismatch.
func Verify(expected int, resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != expected {
		return &UnexpectedStatusError{Status: resp.StatusCode, Body: body}
	}
	return nil
}

// decode consumes the response body into out, requiring the given status.
func decode(expected int, resp *http.Response, out any) error {
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != expected {
		return &UnexpectedStatusError{Status: resp.StatusCode, Body: body}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
