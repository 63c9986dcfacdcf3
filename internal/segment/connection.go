package segment

import (
	"context"
	"net/http"
	"net/url"
)

// ConnectionStatus reports the probe outcome for one API surface.
type ConnectionStatus struct {
	Surface    string `json:"surface"`
	Configured bool   `json:"configured"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

// TestConnection probes every surface a credential is configured for and
// reports each outcome. Surfaces without a credential are reported as
// unconfigured rather than probed, so a workspace-only setup and an
// ingestion-only setup both get a meaningful answer.
func (c *Client) TestConnection(ctx context.Context) []ConnectionStatus {
	statuses := []ConnectionStatus{
		{Surface: SurfacePublic.String(), Configured: c.HasToken()},
		{Surface: SurfaceTracking.String(), Configured: c.HasWriteKey()},
	}

	if statuses[0].Configured {
		q := url.Values{}
		q.Set("pagination.count", "1")
		_, err := c.do(ctx, request{
			surface: SurfacePublic,
			method:  http.MethodGet,
			path:    "/sources",
			query:   q,
		})
		statuses[0].OK = err == nil
		if err != nil {
			statuses[0].Error = err.Error()
		}
	}

	if statuses[1].Configured {
		// The Tracking API has no read endpoint; an empty batch is the
		// cheapest call that still exercises the write key.
		_, err := c.do(ctx, request{
			surface: SurfaceTracking,
			method:  http.MethodPost,
			path:    "/v1/batch",
			body:    map[string]any{"batch": []any{}},
		})
		statuses[1].OK = err == nil
		if err != nil {
			statuses[1].Error = err.Error()
		}
	}

	return statuses
}
