package segment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

// PageOptions carries the cursor parameters for Public API list calls.
type PageOptions struct {
	Count  int
	Cursor string
}

func (o PageOptions) query() url.Values {
	q := url.Values{}
	count := o.Count
	if count <= 0 {
		count = 10
	}
	q.Set("pagination.count", strconv.Itoa(count))
	if o.Cursor != "" {
		q.Set("pagination.cursor", o.Cursor)
	}
	return q
}

// listPage fetches one page of a list endpoint and unwraps the envelope.
func (c *Client) listPage(ctx context.Context, path, resourceKey string, opts PageOptions) (*Page, error) {
	raw, err := c.do(ctx, request{
		surface: SurfacePublic,
		method:  http.MethodGet,
		path:    path,
		query:   opts.query(),
	})
	if err != nil {
		return nil, err
	}
	return parsePage(raw, resourceKey)
}

// getResource fetches a single resource; a 404 becomes a NotFound error
// naming the entity and ID instead of the upstream's generic message.
func (c *Client) getResource(ctx context.Context, path, key, entityType, id string) (json.RawMessage, error) {
	raw, err := c.do(ctx, request{surface: SurfacePublic, method: http.MethodGet, path: path})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, NewNotFound(entityType, id)
		}
		return nil, err
	}
	return unwrapData(raw, key), nil
}

// ListSources returns one page of workspace sources.
func (c *Client) ListSources(ctx context.Context, opts PageOptions) (*Page, error) {
	return c.listPage(ctx, "/sources", "sources", opts)
}

// GetSource returns a source by ID.
func (c *Client) GetSource(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "/sources/"+url.PathEscape(id), "source", "Source", id)
}

// CreateSource creates a source from the given fields.
func (c *Client) CreateSource(ctx context.Context, fields map[string]any) (json.RawMessage, error) {
	raw, err := c.do(ctx, request{surface: SurfacePublic, method: http.MethodPost, path: "/sources", body: fields})
	if err != nil {
		return nil, err
	}
	return unwrapData(raw, "source"), nil
}

// UpdateSource applies a partial update to a source.
func (c *Client) UpdateSource(ctx context.Context, id string, fields map[string]any) (json.RawMessage, error) {
	raw, err := c.do(ctx, request{surface: SurfacePublic, method: http.MethodPatch, path: "/sources/" + url.PathEscape(id), body: fields})
	if err != nil {
		return nil, err
	}
	return unwrapData(raw, "source"), nil
}

// DeleteSource removes a source. The Public API responds with a status
// envelope rather than a body worth rendering.
func (c *Client) DeleteSource(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{surface: SurfacePublic, method: http.MethodDelete, path: "/sources/" + url.PathEscape(id)})
	return err
}

// ListDestinations returns one page of workspace destinations.
func (c *Client) ListDestinations(ctx context.Context, opts PageOptions) (*Page, error) {
	return c.listPage(ctx, "/destinations", "destinations", opts)
}

// GetDestination returns a destination by ID.
func (c *Client) GetDestination(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "/destinations/"+url.PathEscape(id), "destination", "Destination", id)
}

// CreateDestination creates a destination from the given fields.
func (c *Client) CreateDestination(ctx context.Context, fields map[string]any) (json.RawMessage, error) {
	raw, err := c.do(ctx, request{surface: SurfacePublic, method: http.MethodPost, path: "/destinations", body: fields})
	if err != nil {
		return nil, err
	}
	return unwrapData(raw, "destination"), nil
}

// UpdateDestination applies a partial update to a destination.
func (c *Client) UpdateDestination(ctx context.Context, id string, fields map[string]any) (json.RawMessage, error) {
	raw, err := c.do(ctx, request{surface: SurfacePublic, method: http.MethodPatch, path: "/destinations/" + url.PathEscape(id), body: fields})
	if err != nil {
		return nil, err
	}
	return unwrapData(raw, "destination"), nil
}

// DeleteDestination removes a destination.
func (c *Client) DeleteDestination(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{surface: SurfacePublic, method: http.MethodDelete, path: "/destinations/" + url.PathEscape(id)})
	return err
}

// ListWarehouses returns one page of workspace warehouses.
func (c *Client) ListWarehouses(ctx context.Context, opts PageOptions) (*Page, error) {
	return c.listPage(ctx, "/warehouses", "warehouses", opts)
}

// GetWarehouse returns a warehouse by ID.
func (c *Client) GetWarehouse(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "/warehouses/"+url.PathEscape(id), "warehouse", "Warehouse", id)
}

// ListSpaces returns one page of Engage spaces.
func (c *Client) ListSpaces(ctx context.Context, opts PageOptions) (*Page, error) {
	return c.listPage(ctx, "/spaces", "spaces", opts)
}

// GetSpace returns a space by ID.
func (c *Client) GetSpace(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "/spaces/"+url.PathEscape(id), "space", "Space", id)
}

// ListAudiences returns one page of audiences within a space.
func (c *Client) ListAudiences(ctx context.Context, spaceID string, opts PageOptions) (*Page, error) {
	return c.listPage(ctx, "/spaces/"+url.PathEscape(spaceID)+"/audiences", "audiences", opts)
}

// GetAudience returns an audience by ID within a space.
func (c *Client) GetAudience(ctx context.Context, spaceID, id string) (json.RawMessage, error) {
	path := "/spaces/" + url.PathEscape(spaceID) + "/audiences/" + url.PathEscape(id)
	return c.getResource(ctx, path, "audience", "Audience", id)
}

// ListTrackingPlans returns one page of tracking plans.
func (c *Client) ListTrackingPlans(ctx context.Context, opts PageOptions) (*Page, error) {
	return c.listPage(ctx, "/tracking-plans", "trackingPlans", opts)
}

// GetTrackingPlan returns a tracking plan by ID.
func (c *Client) GetTrackingPlan(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "/tracking-plans/"+url.PathEscape(id), "trackingPlan", "Tracking plan", id)
}
