package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/koopa0/segment-mcp/internal/segment"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeStructured},
		{"json", ModeStructured},
		{"table", ModeTabular},
		{"TABLE", ModeTabular},
		{" table ", ModeTabular},
		{"nonsense", ModeStructured},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRender_StructuredRoundTrips(t *testing.T) {
	raw := json.RawMessage(`{"id":"abc","nested":{"x":1},"list":[1,2,3]}`)

	out := Render(raw, ModeStructured, "source")

	var got, want any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if err := json.Unmarshal(raw, &want); err != nil {
		t.Fatalf("unmarshal input: %v", err)
	}
	gotJSON, _ := json.Marshal(got)
	wantJSON, _ := json.Marshal(want)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("structured output lost information:\n%s", out)
	}
}

func TestRender_EmptyCollection(t *testing.T) {
	page := &segment.Page{
		Pagination: &segment.Pagination{Current: "MA=="},
		Raw:        json.RawMessage(`{"data":{"sources":[],"pagination":{"current":"MA=="}}}`),
	}

	out := Render(page, ModeTabular, "sources")

	if !strings.Contains(out, "## Sources") {
		t.Errorf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "Showing: 0") {
		t.Errorf("missing Showing: 0 line:\n%s", out)
	}
	if !strings.Contains(out, "No items found.") {
		t.Errorf("missing no-items line:\n%s", out)
	}
	if strings.Contains(out, "|") {
		t.Errorf("empty collection must not render a table:\n%s", out)
	}
}

func TestRender_CollectionSummary(t *testing.T) {
	items := make([]json.RawMessage, 5)
	for i := range items {
		items[i] = json.RawMessage(`{"id":"s","name":"n","slug":"sl","enabled":true}`)
	}

	t.Run("complete page has no continuation line", func(t *testing.T) {
		page := &segment.Page{
			Items:      items,
			Pagination: &segment.Pagination{Current: "MA==", TotalEntries: 5},
		}

		out := Render(page, ModeTabular, "sources")

		if !strings.Contains(out, "Total: 5 | Showing: 5") {
			t.Errorf("missing summary line:\n%s", out)
		}
		if strings.Contains(out, "More available") {
			t.Errorf("unexpected continuation line:\n%s", out)
		}
	})

	t.Run("next cursor adds continuation line", func(t *testing.T) {
		page := &segment.Page{
			Items:      items,
			Pagination: &segment.Pagination{Current: "MA==", Next: "NQ==", TotalEntries: 12},
		}

		out := Render(page, ModeTabular, "sources")

		if !strings.Contains(out, "Total: 12 | Showing: 5") {
			t.Errorf("missing summary line:\n%s", out)
		}
		if !strings.Contains(out, "More available. Next cursor: NQ==") {
			t.Errorf("missing continuation line:\n%s", out)
		}
	})
}

func TestRender_KnownKindColumns(t *testing.T) {
	page := &segment.Page{
		Items: []json.RawMessage{
			json.RawMessage(`{"id":"s1","name":"Widget","slug":"widget","enabled":true,"workspaceId":"w1"}`),
			json.RawMessage(`{"id":"s2","enabled":false}`),
		},
		Pagination: &segment.Pagination{TotalEntries: 2},
	}

	out := Render(page, ModeTabular, "sources")

	if !strings.Contains(out, "| ID | Name | Slug | Enabled |") {
		t.Errorf("missing sources header row:\n%s", out)
	}
	if !strings.Contains(out, "| s1 | Widget | widget | true |") {
		t.Errorf("missing first row:\n%s", out)
	}
	// Fields absent from an item render as "-".
	if !strings.Contains(out, "| s2 | - | - | false |") {
		t.Errorf("missing dash placeholders:\n%s", out)
	}
	// The extra field is not a registered column and must not leak in.
	if strings.Contains(out, "workspaceId") || strings.Contains(out, "w1") {
		t.Errorf("unregistered column leaked:\n%s", out)
	}
}

func TestRender_InferredColumnsTruncateToFive(t *testing.T) {
	page := &segment.Page{
		Items: []json.RawMessage{
			json.RawMessage(`{"a":1,"b":2,"c":3,"d":4,"e":5,"f":6}`),
		},
	}

	out := Render(page, ModeTabular, "gadgets")

	if !strings.Contains(out, "| a | b | c | d | e |") {
		t.Errorf("inferred header row wrong:\n%s", out)
	}
	if strings.Contains(out, "| f |") || strings.Contains(out, " 6 ") {
		t.Errorf("sixth column leaked:\n%s", out)
	}
	if !strings.Contains(out, "| 1 | 2 | 3 | 4 | 5 |") {
		t.Errorf("value row wrong:\n%s", out)
	}
}

func TestRender_PlainList(t *testing.T) {
	raw := json.RawMessage(`[{"x":"1","y":"2"},{"x":"3"}]`)

	out := Render(raw, ModeTabular, "things")

	if !strings.Contains(out, "| x | y |") {
		t.Errorf("missing inferred header:\n%s", out)
	}
	if !strings.Contains(out, "| 3 | - |") {
		t.Errorf("missing dash for absent value:\n%s", out)
	}
}

func TestRender_SingleObject(t *testing.T) {
	raw := json.RawMessage(`{"id":"abc","name":"Widget","enabled":true,"nested":{"x":1},"gone":null}`)

	out := Render(raw, ModeTabular, "source")

	if !strings.Contains(out, "## Source") {
		t.Errorf("missing singular heading:\n%s", out)
	}
	for _, line := range []string{"**Id:** abc", "**Name:** Widget", "**Enabled:** true"} {
		if !strings.Contains(out, line) {
			t.Errorf("missing line %q:\n%s", line, out)
		}
	}
	if !strings.Contains(out, "**Nested:**\n```json") {
		t.Errorf("missing fenced nested block:\n%s", out)
	}
	if !strings.Contains(out, `"x": 1`) {
		t.Errorf("nested block not indented:\n%s", out)
	}
	// Null fields are omitted entirely.
	if strings.Contains(out, "Gone") {
		t.Errorf("null field leaked:\n%s", out)
	}
}

func TestRender_FieldLabels(t *testing.T) {
	raw := json.RawMessage(`{"workspaceId":"w1","createdAt":"2026-01-01"}`)

	out := Render(raw, ModeTabular, "source")

	if !strings.Contains(out, "**Workspace Id:** w1") {
		t.Errorf("camelCase label not spaced:\n%s", out)
	}
	if !strings.Contains(out, "**Created At:** 2026-01-01") {
		t.Errorf("camelCase label not spaced:\n%s", out)
	}
}

func TestRender_SingularHeadings(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"source", "## Source"},
		{"sources", "## Source"},
		{"audiences", "## Audience"},
		{"tracking-plans", "## Tracking Plan"},
		{"", "## Result"},
	}
	for _, tt := range tests {
		out := Render(json.RawMessage(`{"id":"x"}`), ModeTabular, tt.kind)
		if !strings.Contains(out, tt.want) {
			t.Errorf("kind %q: want heading %q, got:\n%s", tt.kind, tt.want, out)
		}
	}
}

func TestRender_ScalarAndArbitraryValues(t *testing.T) {
	if out := Render(json.RawMessage(`"just text"`), ModeTabular, ""); out != "just text" {
		t.Errorf("scalar = %q", out)
	}
	if out := Render(nil, ModeTabular, ""); out != "" {
		t.Errorf("nil = %q", out)
	}

	type status struct {
		Surface string `json:"surface"`
		OK      bool   `json:"ok"`
	}
	out := Render([]status{{"public", true}, {"tracking", false}}, ModeTabular, "probes")
	if !strings.Contains(out, "| surface | ok |") {
		t.Errorf("go value not rendered as table:\n%s", out)
	}
}

func TestRegister_OverridesLayout(t *testing.T) {
	Register("gizmos", []Column{{"Identifier", "id"}})
	t.Cleanup(func() { delete(specs, "gizmos") })

	page := &segment.Page{Items: []json.RawMessage{json.RawMessage(`{"id":"g1","other":"x"}`)}}
	out := Render(page, ModeTabular, "gizmos")

	if !strings.Contains(out, "| Identifier |") || !strings.Contains(out, "| g1 |") {
		t.Errorf("registered layout not used:\n%s", out)
	}
}
