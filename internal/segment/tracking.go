package segment

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Event is one Tracking API call. Type selects the endpoint (track,
// identify, page, screen, group, alias); the remaining fields map onto
// the common payload shape. Either UserID or AnonymousID must be set.
type Event struct {
	Type        string
	UserID      string
	AnonymousID string

	// Event names a track call; Name titles a page or screen call.
	Event string
	Name  string

	// Properties carries event attributes; Traits carries identity or
	// group attributes.
	Properties map[string]any
	Traits     map[string]any

	// GroupID is required for group calls; PreviousID for alias calls.
	GroupID    string
	PreviousID string

	// Timestamp overrides the send time when replaying history
	// (RFC 3339). Empty means now.
	Timestamp string
}

// validate applies the Tracking API's local preconditions so a bad call
// never reaches the network.
func (e Event) validate() *APIError {
	details := map[string][]string{}
	if e.UserID == "" && e.AnonymousID == "" {
		details["userId"] = []string{"either userId or anonymousId is required"}
	}
	switch e.Type {
	case "track":
		if e.Event == "" {
			details["event"] = []string{"event name is required for track calls"}
		}
	case "group":
		if e.GroupID == "" {
			details["groupId"] = []string{"groupId is required for group calls"}
		}
	case "alias":
		if e.PreviousID == "" {
			details["previousId"] = []string{"previousId is required for alias calls"}
		}
	}
	if e.Timestamp != "" {
		if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
			details["timestamp"] = []string{"timestamp must be RFC 3339"}
		}
	}
	if len(details) > 0 {
		return NewInvalidInput("invalid event parameters", details)
	}
	return nil
}

func (e Event) payload() map[string]any {
	p := map[string]any{
		"messageId": uuid.NewString(),
	}
	if e.UserID != "" {
		p["userId"] = e.UserID
	}
	if e.AnonymousID != "" {
		p["anonymousId"] = e.AnonymousID
	}
	if e.Event != "" {
		p["event"] = e.Event
	}
	if e.Name != "" {
		p["name"] = e.Name
	}
	if len(e.Properties) > 0 {
		p["properties"] = e.Properties
	}
	if len(e.Traits) > 0 {
		p["traits"] = e.Traits
	}
	if e.GroupID != "" {
		p["groupId"] = e.GroupID
	}
	if e.PreviousID != "" {
		p["previousId"] = e.PreviousID
	}
	if e.Timestamp != "" {
		p["timestamp"] = e.Timestamp
	}
	return p
}

// SendEvent delivers one event to the Tracking API. The response is the
// upstream acknowledgement, normally {"success": true}.
func (c *Client) SendEvent(ctx context.Context, event Event) (json.RawMessage, error) {
	if apiErr := event.validate(); apiErr != nil {
		return nil, apiErr
	}
	return c.do(ctx, request{
		surface: SurfaceTracking,
		method:  http.MethodPost,
		path:    "/v1/" + event.Type,
		body:    event.payload(),
	})
}
