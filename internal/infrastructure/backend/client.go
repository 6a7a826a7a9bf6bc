// Package backend talks to the match-me REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/matchme/matchme-web/internal/api/metrics"
	"github.com/matchme/matchme-web/internal/core/domain"
	"github.com/matchme/matchme-web/internal/infrastructure/session"
)

const (
	defaultTimeout  = 10 * time.Second
	maxBodyBytes    = 1 << 20
	maxMessageBytes = 512
)

// Config captures the settings of the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the transport. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client issues JSON requests to the backend and maps every failure onto the
// domain error taxonomy.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		log:     log.With().Str("component", "backend").Logger(),
	}
}

// Call is a single backend request.
type Call struct {
	Method string
	Path   string
	// Token is sent as a bearer credential when non-empty.
	Token string
	// Body is JSON-encoded when non-nil.
	Body any
	// Out receives the decoded response. A nil Out discards the body.
	Out any
}

func (c Call) route() string { return c.Method + " " + c.Path }

// Do performs call. Errors are *domain.RequestError for non-2xx answers,
// *domain.NetworkError when no answer arrived and *domain.DecodeError when a
// 2xx body does not fit Out.
func (c *Client) Do(ctx context.Context, call Call) error {
	route := call.route()
	start := time.Now()

	outcome, status, err := c.do(ctx, call)

	elapsed := time.Since(start)
	metrics.BackendRequestsTotal.WithLabelValues(route, outcome).Inc()
	metrics.BackendRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

	var ev *zerolog.Event
	if err != nil {
		ev = c.log.Warn().Err(err)
	} else {
		ev = c.log.Debug()
	}
	ev.Str("method", call.Method).
		Str("path", call.Path).
		Int("status", status).
		Dur("latency", elapsed).
		Str("subject", session.Subject(call.Token)).
		Msg("backend call")

	return err
}

func (c *Client) do(ctx context.Context, call Call) (outcome string, status int, err error) {
	route := call.route()

	var body io.Reader
	if call.Body != nil {
		buf, err := json.Marshal(call.Body)
		if err != nil {
			return "encode_error", 0, fmt.Errorf("%s: encode body: %w", route, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, c.baseURL+call.Path, body)
	if err != nil {
		return "encode_error", 0, fmt.Errorf("%s: build request: %w", route, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if call.Token != "" {
		req.Header.Set("Authorization", "Bearer "+call.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "network_error", 0, &domain.NetworkError{Op: route, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "network_error", resp.StatusCode, &domain.NetworkError{Op: route, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "request_error", resp.StatusCode, &domain.RequestError{
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
	}

	if call.Out == nil {
		return "ok", resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, call.Out); err != nil {
		return "decode_error", resp.StatusCode, &domain.DecodeError{Op: route, Err: err}
	}
	return "ok", resp.StatusCode, nil
}

// errorMessage extracts a human-readable message from an error body. JSON
// bodies contribute their "message" or "error" field; anything else is taken
// as plain text.
func errorMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
		return ""
	}

	msg := strings.TrimSpace(string(raw))
	if len(msg) > maxMessageBytes {
		msg = msg[:maxMessageBytes]
		for !utf8.ValidString(msg) {
			msg = msg[:len(msg)-1]
		}
	}
	return msg
}

// Ping reports whether the backend answers HTTP at all. Any status counts as
// reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: "GET /", Err: err}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	return resp.Body.Close()
}
