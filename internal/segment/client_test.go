package segment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// countingTransport fails any request that reaches it while counting
// attempts, so tests can assert that no network call was made.
type countingTransport struct {
	calls int
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls++
	return nil, errors.New("unexpected network call")
}

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.PublicAPIBaseURL = srv.URL
	cfg.TrackingAPIBaseURL = srv.URL
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestDo_RoundTripIdentity(t *testing.T) {
	body := `{"a":1,"b":[true,null],"c":"text"}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}, Config{Token: "tok"})

	raw, err := client.do(context.Background(), request{surface: SurfacePublic, method: http.MethodGet, path: "/anything"})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if string(raw) != body {
		t.Errorf("body = %q, want %q", raw, body)
	}
}

func TestDo_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, Config{Token: "tok"})

	raw, err := client.do(context.Background(), request{surface: SurfacePublic, method: http.MethodDelete, path: "/x"})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if raw != nil {
		t.Errorf("raw = %q, want nil", raw)
	}
}

func TestDo_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, Config{Token: "tok"})

	raw, err := client.do(context.Background(), request{surface: SurfacePublic, method: http.MethodGet, path: "/x"})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if raw != nil {
		t.Errorf("raw = %q, want nil", raw)
	}
}

func TestDo_ClassifiesNon2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}, Config{Token: "tok"})

	_, err := client.do(context.Background(), request{surface: SurfacePublic, method: http.MethodGet, path: "/x"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Kind != KindRateLimited {
		t.Errorf("Kind = %v, want KindRateLimited", apiErr.Kind)
	}
	if apiErr.RetryAfterSeconds != 30 {
		t.Errorf("RetryAfterSeconds = %d, want 30", apiErr.RetryAfterSeconds)
	}
}

func TestDo_InvalidJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}, Config{Token: "tok"})

	_, err := client.do(context.Background(), request{surface: SurfacePublic, method: http.MethodGet, path: "/x"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Kind != KindGeneric {
		t.Errorf("Kind = %v, want KindGeneric", apiErr.Kind)
	}
}

func TestDo_MissingCredentialShortCircuits(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		surface Surface
	}{
		{"no token for public", Config{WriteKey: "wk"}, SurfacePublic},
		{"no write key for tracking", Config{Token: "tok"}, SurfaceTracking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &countingTransport{}
			tt.cfg.HTTPClient = &http.Client{Transport: transport}
			client, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			_, err = client.do(context.Background(), request{surface: tt.surface, method: http.MethodGet, path: "/x"})

			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Kind != KindMissingCredential {
				t.Fatalf("err = %v, want KindMissingCredential", err)
			}
			if transport.calls != 0 {
				t.Errorf("network calls = %d, want 0", transport.calls)
			}
		})
	}
}

func TestDo_AuthModes(t *testing.T) {
	t.Run("public uses bearer token", func(t *testing.T) {
		var got string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}, Config{Token: "sgp_token"})

		if _, err := client.do(context.Background(), request{surface: SurfacePublic, method: http.MethodGet, path: "/x"}); err != nil {
			t.Fatalf("do: %v", err)
		}
		if got != "Bearer sgp_token" {
			t.Errorf("Authorization = %q, want Bearer sgp_token", got)
		}
	})

	t.Run("tracking uses basic auth with empty password", func(t *testing.T) {
		var user, pass string
		var ok bool
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok = r.BasicAuth()
			w.Write([]byte(`{"success":true}`))
		}, Config{WriteKey: "wk_123"})

		if _, err := client.do(context.Background(), request{surface: SurfaceTracking, method: http.MethodPost, path: "/v1/track"}); err != nil {
			t.Fatalf("do: %v", err)
		}
		if !ok || user != "wk_123" || pass != "" {
			t.Errorf("basic auth = (%q, %q, %v), want (wk_123, empty, true)", user, pass, ok)
		}
	})
}

func TestGetSource_MapsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"message":"the requested resource was not found"}]}`))
	}, Config{Token: "tok"})

	_, err := client.GetSource(context.Background(), "src_missing")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Kind != KindNotFound {
		t.Errorf("Kind = %v, want KindNotFound", apiErr.Kind)
	}
	if apiErr.Message != "Source with ID 'src_missing' not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestListSources_ParsesPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sources" {
			t.Errorf("path = %q, want /sources", r.URL.Path)
		}
		if got := r.URL.Query().Get("pagination.count"); got != "2" {
			t.Errorf("pagination.count = %q, want 2", got)
		}
		w.Write([]byte(`{"data":{"sources":[{"id":"s1"},{"id":"s2"}],"pagination":{"current":"MA==","next":"Mg==","totalEntries":7}}}`))
	}, Config{Token: "tok"})

	page, err := client.ListSources(context.Background(), PageOptions{Count: 2})
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}

	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Pagination == nil {
		t.Fatal("pagination missing")
	}
	if page.Pagination.Next != "Mg==" {
		t.Errorf("Next = %q, want Mg==", page.Pagination.Next)
	}
	if page.Pagination.TotalEntries != 7 {
		t.Errorf("TotalEntries = %d, want 7", page.Pagination.TotalEntries)
	}
}

func TestGetSource_UnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"source":{"id":"s1","name":"Widget"}}}`))
	}, Config{Token: "tok"})

	raw, err := client.GetSource(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetSource: %v", err)
	}

	var source map[string]any
	if err := json.Unmarshal(raw, &source); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if source["id"] != "s1" || source["name"] != "Widget" {
		t.Errorf("source = %v", source)
	}
}

func TestSendEvent_ValidatesLocally(t *testing.T) {
	transport := &countingTransport{}
	client, err := New(Config{WriteKey: "wk", HTTPClient: &http.Client{Transport: transport}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.SendEvent(context.Background(), Event{Type: "track", Event: "Signed Up"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindInvalidInput {
		t.Fatalf("err = %v, want KindInvalidInput", err)
	}
	if len(apiErr.Details["userId"]) == 0 {
		t.Errorf("Details = %v, want userId violation", apiErr.Details)
	}
	if transport.calls != 0 {
		t.Errorf("network calls = %d, want 0", transport.calls)
	}
}

func TestSendEvent_BuildsPayload(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/track" {
			t.Errorf("path = %q, want /v1/track", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Write([]byte(`{"success":true}`))
	}, Config{WriteKey: "wk"})

	raw, err := client.SendEvent(context.Background(), Event{
		Type:       "track",
		UserID:     "u1",
		Event:      "Signed Up",
		Properties: map[string]any{"plan": "pro"},
	})
	if err != nil {
		t.Fatalf("SendEvent: %v", err)
	}
	if string(raw) != `{"success":true}` {
		t.Errorf("raw = %q", raw)
	}

	if payload["userId"] != "u1" || payload["event"] != "Signed Up" {
		t.Errorf("payload = %v", payload)
	}
	if id, _ := payload["messageId"].(string); id == "" {
		t.Error("messageId missing from payload")
	}
}

func TestTestConnection_ProbesConfiguredSurfaces(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{}`))
	}, Config{Token: "tok", WriteKey: "wk"})

	statuses := client.TestConnection(context.Background())

	if len(statuses) != 2 {
		t.Fatalf("statuses = %d, want 2", len(statuses))
	}
	for _, st := range statuses {
		if !st.Configured || !st.OK {
			t.Errorf("surface %s: configured=%v ok=%v, want both true", st.Surface, st.Configured, st.OK)
		}
	}
	if len(paths) != 2 || paths[0] != "/sources" || paths[1] != "/v1/batch" {
		t.Errorf("probed paths = %v", paths)
	}
}

func TestTestConnection_SkipsUnconfiguredSurface(t *testing.T) {
	transport := &countingTransport{}
	client, err := New(Config{HTTPClient: &http.Client{Transport: transport}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	statuses := client.TestConnection(context.Background())

	for _, st := range statuses {
		if st.Configured || st.OK {
			t.Errorf("surface %s: configured=%v ok=%v, want both false", st.Surface, st.Configured, st.OK)
		}
	}
	if transport.calls != 0 {
		t.Errorf("network calls = %d, want 0", transport.calls)
	}
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New(Config{Token: "tok", PublicAPIBaseURL: "::not-a-url"})
	if err == nil {
		t.Fatal("New accepted an invalid base URL")
	}
}
