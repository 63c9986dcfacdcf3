package segment

import (
	"encoding/json"
	"fmt"
)

// Pagination is the cursor metadata the Public API attaches to list
// responses.
type Pagination struct {
	Current      string `json:"current"`
	Next         string `json:"next,omitempty"`
	TotalEntries int    `json:"totalEntries,omitempty"`
}

// Page is one page of a Public API list response. Items stay raw so the
// renderer can recover the original key order of each resource. Raw holds
// the full response body for verbatim (structured) output.
type Page struct {
	Items      []json.RawMessage
	Pagination *Pagination
	Raw        json.RawMessage
}

// parsePage unwraps the Public API list envelope
// {"data": {"<resourceKey>": [...], "pagination": {...}}}.
func parsePage(raw json.RawMessage, resourceKey string) (*Page, error) {
	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding list envelope: %w", err)
	}

	page := &Page{Raw: raw}

	if itemsRaw, ok := envelope.Data[resourceKey]; ok {
		if err := json.Unmarshal(itemsRaw, &page.Items); err != nil {
			return nil, fmt.Errorf("decoding %q items: %w", resourceKey, err)
		}
	}
	if pagRaw, ok := envelope.Data["pagination"]; ok {
		var pag Pagination
		if err := json.Unmarshal(pagRaw, &pag); err == nil {
			page.Pagination = &pag
		}
	}
	return page, nil
}

// unwrapData navigates {"data": {"<key>": ...}} down to the resource
// itself. Unexpected shapes come back unchanged, so display still works
// for responses that skip the envelope.
func unwrapData(raw json.RawMessage, key string) json.RawMessage {
	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	if inner, ok := envelope.Data[key]; ok {
		return inner
	}
	return raw
}
