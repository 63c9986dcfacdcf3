// Package segment is a lightweight client for Segment's two REST API
// surfaces: the Public (management) API, authenticated with a bearer
// token, and the Tracking API, authenticated with the write key as HTTP
// Basic username and an empty password.
//
// The client issues exactly one network call per invocation and never
// retries. Failures are classified into the closed APIError taxonomy in
// errors.go; retryability is advisory metadata for callers.
package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/koopa0/segment-mcp/internal/log"
)

// Default API endpoints. Both can be overridden per client via Config,
// so two clients in one process may target different regions.
const (
	DefaultPublicAPIBaseURL   = "https://api.segmentapis.com"
	DefaultTrackingAPIBaseURL = "https://api.segment.io"
)

// Surface selects which logical API a request targets; it decides the
// base URL and the authentication mode.
type Surface int

const (
	// SurfacePublic is the management API (bearer token auth).
	SurfacePublic Surface = iota
	// SurfaceTracking is the event ingestion API (basic auth, write key
	// as username, empty password).
	SurfaceTracking
)

func (s Surface) String() string {
	if s == SurfaceTracking {
		return "tracking"
	}
	return "public"
}

// Config holds everything a Client needs. Base URLs are threaded in here
// rather than read from package state, and either credential may be left
// empty: requests against a surface whose credential is missing fail with
// KindMissingCredential before any network call.
type Config struct {
	// Token authenticates Public API requests.
	Token string

	// WriteKey authenticates Tracking API requests.
	WriteKey string

	// PublicAPIBaseURL and TrackingAPIBaseURL default to the production
	// endpoints when empty.
	PublicAPIBaseURL   string
	TrackingAPIBaseURL string

	// HTTPClient is the transport used for all requests. Timeouts belong
	// to it, not to this package. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client

	Logger log.Logger
}

// Client talks to the Segment APIs. It is read-only after construction,
// so concurrent use from multiple tool calls is safe.
type Client struct {
	token        string
	writeKey     string
	publicBase   string
	trackingBase string
	httpClient   *http.Client
	logger       log.Logger
}

// New validates the configuration and builds a Client.
func New(cfg Config) (*Client, error) {
	publicBase := cfg.PublicAPIBaseURL
	if publicBase == "" {
		publicBase = DefaultPublicAPIBaseURL
	}
	trackingBase := cfg.TrackingAPIBaseURL
	if trackingBase == "" {
		trackingBase = DefaultTrackingAPIBaseURL
	}
	for _, base := range []string{publicBase, trackingBase} {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid API base URL %q", base)
		}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	return &Client{
		token:        cfg.Token,
		writeKey:     cfg.WriteKey,
		publicBase:   publicBase,
		trackingBase: trackingBase,
		httpClient:   httpClient,
		logger:       logger,
	}, nil
}

// HasToken reports whether a Public API credential is configured.
func (c *Client) HasToken() bool { return c.token != "" }

// HasWriteKey reports whether a Tracking API credential is configured.
func (c *Client) HasWriteKey() bool { return c.writeKey != "" }

// request describes one outbound call before authentication is applied.
type request struct {
	surface Surface
	method  string
	path    string
	query   url.Values
	body    any
}

// do issues a single request and funnels the outcome through the error
// taxonomy. A 204 or empty 2xx body yields a nil RawMessage.
func (c *Client) do(ctx context.Context, req request) (json.RawMessage, error) {
	base := c.publicBase
	if req.surface == SurfaceTracking {
		base = c.trackingBase
		if c.writeKey == "" {
			return nil, NewMissingCredential("tracking write key")
		}
	} else if c.token == "" {
		return nil, NewMissingCredential("public API token")
	}

	target := base + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var reqBody io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if req.surface == SurfaceTracking {
		httpReq.SetBasicAuth(c.writeKey, "")
	} else {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := Classify(resp.StatusCode, resp.Header, respBody)
		c.logger.Debug("segment API error",
			"surface", req.surface.String(),
			"method", req.method,
			"path", req.path,
			"status", resp.StatusCode,
			"code", apiErr.Code())
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}

	// Should not happen with a correctly-behaving upstream, but a bad
	// body must degrade to a classified error rather than a crash.
	if !json.Valid(respBody) {
		return nil, &APIError{
			Kind:       KindGeneric,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("upstream returned invalid JSON (status %d)", resp.StatusCode),
		}
	}

	return json.RawMessage(respBody), nil
}
