package mcp

import (
	"testing"

	"github.com/koopa0/segment-mcp/internal/segment"
)

func testClient(t *testing.T) *segment.Client {
	t.Helper()
	client, err := segment.New(segment.Config{Token: "tok", WriteKey: "wk"})
	if err != nil {
		t.Fatalf("segment.New: %v", err)
	}
	return client
}

func TestNewServer_Validation(t *testing.T) {
	client := testClient(t)

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Name: "segment-mcp", Version: "1.0.0", Client: client}, false},
		{"missing name", Config{Version: "1.0.0", Client: client}, true},
		{"missing version", Config{Name: "segment-mcp", Client: client}, true},
		{"missing client", Config{Name: "segment-mcp", Version: "1.0.0"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewServer accepted invalid config")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewServer: %v", err)
			}
			if server == nil {
				t.Fatal("NewServer returned nil server")
			}
		})
	}
}
