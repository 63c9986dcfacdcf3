// Package render turns decoded Segment API payloads into the text a tool
// caller sees: either the structured JSON verbatim, or a markdown summary
// whose layout is selected by the logical resource kind.
//
// Rendering is pure and deterministic given its inputs; nothing here does
// I/O or holds state across calls.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/koopa0/segment-mcp/internal/segment"
)

// Mode selects the output shape of a successful result.
type Mode int

const (
	// ModeStructured serializes the payload as indented JSON, verbatim.
	ModeStructured Mode = iota
	// ModeTabular summarizes the payload as markdown headings and tables.
	ModeTabular
)

// ParseMode maps the tool-level format parameter to a Mode. Anything
// other than "table" (including empty) means structured JSON.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "table") {
		return ModeTabular
	}
	return ModeStructured
}

// maxInferredColumns caps column inference for unrecognized resource
// kinds at the first five keys of the first item.
const maxInferredColumns = 5

// Render produces the final textual artifact for a value. The value may
// be a *segment.Page, a raw JSON payload, or any serializable Go value;
// kind selects the tabular column layout.
func Render(value any, mode Mode, kind string) string {
	switch v := value.(type) {
	case *segment.Page:
		if mode == ModeStructured {
			return indentRaw(v.Raw)
		}
		return renderPage(v, kind)
	case json.RawMessage:
		if mode == ModeStructured {
			return indentRaw(v)
		}
		return renderRaw(v, kind)
	case nil:
		return ""
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		if mode == ModeStructured {
			return indentRaw(raw)
		}
		return renderRaw(raw, kind)
	}
}

// indentRaw pretty-prints a raw payload without re-decoding it, so the
// structured mode round-trips byte-for-byte modulo whitespace.
func indentRaw(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func renderRaw(raw json.RawMessage, kind string) string {
	v, err := decode(raw)
	if err != nil {
		return string(raw)
	}
	switch t := v.(type) {
	case *object:
		return renderObject(t, kind)
	case []any:
		return renderTable(t, "")
	default:
		return inlineValue(t)
	}
}

// renderPage emits the heading, count summary, optional continuation
// line, and table for one page of a paginated collection.
func renderPage(p *segment.Page, kind string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", heading(kind))

	total := 0
	if p.Pagination != nil {
		total = p.Pagination.TotalEntries
	}
	if total > 0 {
		fmt.Fprintf(&b, "Total: %d | Showing: %d\n", total, len(p.Items))
	} else {
		fmt.Fprintf(&b, "Showing: %d\n", len(p.Items))
	}
	if p.Pagination != nil && p.Pagination.Next != "" {
		fmt.Fprintf(&b, "More available. Next cursor: %s\n", p.Pagination.Next)
	}
	b.WriteString("\n")

	if len(p.Items) == 0 {
		b.WriteString("No items found.\n")
		return b.String()
	}

	items := make([]any, 0, len(p.Items))
	for _, rawItem := range p.Items {
		v, err := decode(rawItem)
		if err != nil {
			continue
		}
		items = append(items, v)
	}
	b.WriteString(renderTable(items, kind))
	return b.String()
}

// renderTable builds a markdown table. Known kinds use their registered
// columns; everything else infers columns from the first item.
func renderTable(items []any, kind string) string {
	if len(items) == 0 {
		return "No items found.\n"
	}

	cols, ok := columnsFor(kind)
	if !ok {
		cols = inferColumns(items)
	}
	if len(cols) == 0 {
		// Items are not objects; fall back to a plain list.
		var b strings.Builder
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", inlineValue(item))
		}
		return b.String()
	}

	var b strings.Builder
	for i, col := range cols {
		if i > 0 {
			b.WriteString(" | ")
		} else {
			b.WriteString("| ")
		}
		b.WriteString(col.Header)
	}
	b.WriteString(" |\n")
	for i := range cols {
		if i > 0 {
			b.WriteString(" | ")
		} else {
			b.WriteString("| ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")

	for _, item := range items {
		for i, col := range cols {
			if i > 0 {
				b.WriteString(" | ")
			} else {
				b.WriteString("| ")
			}
			b.WriteString(cell(item, col.Field))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

// inferColumns takes the first five keys of the first item, in their
// original order, as both header and field.
func inferColumns(items []any) []Column {
	first, ok := items[0].(*object)
	if !ok {
		return nil
	}
	keys := first.keys
	if len(keys) > maxInferredColumns {
		keys = keys[:maxInferredColumns]
	}
	cols := make([]Column, 0, len(keys))
	for _, key := range keys {
		cols = append(cols, Column{Header: key, Field: key})
	}
	return cols
}

func cell(item any, field string) string {
	obj, ok := item.(*object)
	if !ok {
		return "-"
	}
	v, ok := obj.get(field)
	if !ok || v == nil {
		return "-"
	}
	return escapeCell(inlineValue(v))
}

// renderObject emits a single resource: a singular heading, one bold
// key/value line per scalar field, and a fenced JSON block per nested
// field. Null fields are omitted.
func renderObject(o *object, kind string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", singularHeading(kind))

	for _, key := range o.keys {
		v := o.values[key]
		if v == nil {
			continue
		}
		label := fieldLabel(key)
		switch v.(type) {
		case *object, []any:
			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				continue
			}
			fmt.Fprintf(&b, "**%s:**\n```json\n%s\n```\n", label, data)
		default:
			fmt.Fprintf(&b, "**%s:** %s\n", label, inlineValue(v))
		}
	}
	return b.String()
}

func inlineValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return "-"
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

// fieldLabel converts a camelCase field name to spaced Title Case for
// display: a space before each internal uppercase letter, then an
// uppercased first character.
func fieldLabel(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	return strings.ToUpper(out[:1]) + out[1:]
}

// heading renders a resource kind tag ("tracking-plans") as a title
// ("Tracking Plans").
func heading(kind string) string {
	if kind == "" {
		return "Results"
	}
	words := strings.Split(kind, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// singularHeading is heading() with the last word singularized, for
// single-resource output.
func singularHeading(kind string) string {
	if kind == "" {
		return "Result"
	}
	words := strings.Split(kind, "-")
	if len(words) > 0 {
		words[len(words)-1] = singularize(words[len(words)-1])
	}
	return heading(strings.Join(words, "-"))
}

func singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return strings.TrimSuffix(s, "ies") + "y"
	case strings.HasSuffix(s, "ss"):
		return s
	case strings.HasSuffix(s, "s"):
		return strings.TrimSuffix(s, "s")
	default:
		return s
	}
}
