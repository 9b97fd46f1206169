// Package remote is the HTTP client for the shared Skybound scoring service.
//
// Every call runs under its own deadline (one second by default). When the
// deadline fires the request context is cancelled, which aborts the in-flight
// request and closes its connection. All failures are returned as
// *leaderboard.NetworkError so the caller can fall back to the device store.
package remote

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

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skybound/internal/leaderboard"
)

// Defaults for a Client.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 1000 * time.Millisecond
)

// Response bodies larger than this are treated as malformed.
const maxBodyBytes = 1 << 20

// Option configures the Client.
type Option func(*Client)

// Client calls the scoring service. It implements leaderboard.Source.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	headers    http.Header
	logger     *log.Logger
}

// NewClient constructs a client for the service at baseURL
// (e.g. http://localhost:5000).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("remote: base URL is required")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		headers:    make(http.Header),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithTimeout sets the per-call deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeader sets a header sent with every request.
func WithHeader(k, v string) Option {
	return func(c *Client) {
		if k != "" {
			c.headers.Set(k, v)
		}
	}
}

// WithLogger sets the logger for per-request debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// BaseURL returns the service address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// wireEntry is a leaderboard row as the service sends it. Rank is optional.
type wireEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Rank  int    `json:"rank,omitempty"`
}

type wireSubmitRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type wireSubmitResponse struct {
	Success *bool  `json:"success"`
	Error   string `json:"error,omitempty"`
}

// List fetches the ranked leaderboard. The server orders its own rows and
// that order is kept as is; rows without a rank are numbered by their
// position in the response.
func (c *Client) List(ctx context.Context) ([]leaderboard.RankedEntry, error) {
	var rows []wireEntry
	if err := c.do(ctx, "list", http.MethodGet, "/leaderboard", nil, &rows); err != nil {
		return nil, err
	}

	entries := make([]leaderboard.RankedEntry, len(rows))
	for i, row := range rows {
		if row.Name == "" {
			return nil, &leaderboard.NetworkError{
				Op:   "list",
				Kind: leaderboard.KindDecode,
				Err:  fmt.Errorf("row %d has no name", i),
			}
		}
		rank := row.Rank
		if rank <= 0 {
			rank = i + 1
		}
		entries[i] = leaderboard.RankedEntry{Rank: rank, Name: row.Name, Score: row.Score}
	}
	return entries, nil
}

// Submit posts a score. The service's verdict is returned as-is, including
// its own MAX_PLAYERS rejection.
func (c *Client) Submit(ctx context.Context, name string, score int) (leaderboard.SubmitResult, error) {
	var resp wireSubmitResponse
	req := wireSubmitRequest{Name: name, Score: score}
	if err := c.do(ctx, "submit", http.MethodPost, "/score", req, &resp); err != nil {
		return leaderboard.SubmitResult{}, err
	}
	if resp.Success == nil {
		return leaderboard.SubmitResult{}, &leaderboard.NetworkError{
			Op:   "submit",
			Kind: leaderboard.KindDecode,
			Err:  errors.New("response has no success field"),
		}
	}
	return leaderboard.SubmitResult{Success: *resp.Success, Error: resp.Error}, nil
}

// Winner fetches the top entry. A null body means there is no winner yet.
func (c *Client) Winner(ctx context.Context) (leaderboard.RankedEntry, bool, error) {
	var row *wireEntry
	if err := c.do(ctx, "winner", http.MethodGet, "/winner", nil, &row); err != nil {
		return leaderboard.RankedEntry{}, false, err
	}
	if row == nil {
		return leaderboard.RankedEntry{}, false, nil
	}
	if row.Name == "" {
		return leaderboard.RankedEntry{}, false, &leaderboard.NetworkError{
			Op:   "winner",
			Kind: leaderboard.KindDecode,
			Err:  errors.New("winner has no name"),
		}
	}
	return leaderboard.RankedEntry{Rank: 1, Name: row.Name, Score: row.Score}, true, nil
}

// Reset asks the service to clear the leaderboard. The response body is ignored.
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, "reset", http.MethodDelete, "/reset", nil, nil)
}

// do performs one request under the client deadline and decodes the JSON
// response into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote: cannot encode %s request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("remote: cannot build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.applyHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("remote call", "op", op, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		//nolint:errcheck // Draining only so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &leaderboard.NetworkError{Op: op, Kind: leaderboard.KindStatus, Status: resp.StatusCode}
	}

	if out == nil {
		//nolint:errcheck // Body is ignored
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &leaderboard.NetworkError{Op: op, Kind: leaderboard.KindTimeout, Err: err}
		}
		return &leaderboard.NetworkError{Op: op, Kind: leaderboard.KindDecode, Err: err}
	}
	return nil
}

func (c *Client) applyHeaders(r *http.Request) {
	for k, vals := range c.headers {
		for _, v := range vals {
			r.Header.Add(k, v)
		}
	}
}

// transportError classifies a failed round trip.
func transportError(ctx context.Context, op string, err error) error {
	kind := leaderboard.KindConnection
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		kind = leaderboard.KindTimeout
	}
	return &leaderboard.NetworkError{Op: op, Kind: kind, Err: err}
}

var _ leaderboard.Source = (*Client)(nil)
