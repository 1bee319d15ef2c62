package powergrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultBackend is used when no backend url is given
	DefaultBackend = "http://localhost:8000"

	gridsPath = "/v1/power-grid/grids"

	defaultTimeout = 10 * time.Second

	// cap on how much of an error body we keep
	maxErrorBody = 4096
)

// APIError is returned when the backend answers with a non 2xx status
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements error
func (e *APIError) Error() string {
	return fmt.Sprintf("API %d: %s", e.StatusCode, e.Body)
}

// CreateRequest asks the backend for a new grid. Both fields are optional.
type CreateRequest struct {
	Seed *int64   `json:"seed,omitempty"`
	Tags []string `json:"tags,omitempty"`
}

type simulateRequest struct {
	Time float64 `json:"time"`
}

// Client talks to the backend over HTTP
type Client struct {
	base string
	hc   *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the http client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// NewClient returns a client for the backend at base (see NormalizeURL)
func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		base: NormalizeURL(base),
		hc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeURL tidies up a user supplied backend url.
// - empty: DefaultBackend
// - missing scheme: http:// is assumed
// - trailing slash is removed
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultBackend
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	return strings.TrimSuffix(trimmed, "/")
}

// BaseURL returns the normalised backend url
func (c *Client) BaseURL() string {
	return c.base
}

// CreateGrid builds a new grid on the backend
func (c *Client) CreateGrid(ctx context.Context, req CreateRequest) (*Snapshot, error) {
	return c.post(ctx, gridsPath, req)
}

// Grid fetches the current snapshot of a grid
func (c *Client) Grid(ctx context.Context, gridID string) (*Snapshot, error) {
	return c.do(ctx, http.MethodGet, gridPath(gridID, ""), nil)
}

// Simulate runs the grid's simulation forward to time t
func (c *Client) Simulate(ctx context.Context, gridID string, t float64) (*Snapshot, error) {
	return c.post(ctx, gridPath(gridID, "/simulate"), simulateRequest{Time: t})
}

// Step simulates one time unit past the snapshot's current sim time
func (c *Client) Step(ctx context.Context, snap *Snapshot) (*Snapshot, error) {
	if snap == nil {
		return nil, errors.New("snapshot is required")
	}
	return c.Simulate(ctx, snap.ID, snap.Meta.SimTime+1)
}

// Command validates & sends a command, returning the resulting snapshot
func (c *Client) Command(ctx context.Context, gridID string, cmd Command) (*Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, gridPath(gridID, "/command"), cmd)
}

// StreamURL returns the websocket url for a grid. https backends get wss.
func (c *Client) StreamURL(gridID string) (string, error) {
	u, err := url.Parse(c.base)
	if err != nil {
		return "", errors.Wrapf(err, "parsing backend url %q", c.base)
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s%s", scheme, u.Host, gridPath(gridID, "/ws")), nil
}

// gridPath returns the path for a grid (plus suffix)
func gridPath(gridID, suffix string) string {
	return gridsPath + "/" + url.PathEscape(gridID) + suffix
}

// post json encodes body & posts it
func (c *Client) post(ctx context.Context, path string, body any) (*Snapshot, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "encoding request")
	}
	return c.do(ctx, http.MethodPost, path, data)
}

// do sends a request & decodes a Snapshot from the response
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*Snapshot, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	snap := &Snapshot{}
	if err := json.NewDecoder(resp.Body).Decode(snap); err != nil {
		return nil, errors.Wrapf(err, "decoding %s %s", method, path)
	}
	return snap, nil
}
