package contentful

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

// APIError is a non-2xx answer from the delivery API.
type APIError struct {
	StatusCode int
	ID         string // e.g. NotFound, InvalidQuery, AccessTokenInvalid
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("contentful: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("contentful: HTTP %d %s: %s", e.StatusCode, e.ID, e.Message)
}

type sys struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	LinkType    string `json:"linkType"`
	ContentType *struct {
		Sys sys `json:"sys"`
	} `json:"contentType"`
}

type errorEnvelope struct {
	Sys       sys    `json:"sys"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

type rawEntry struct {
	Sys    sys                        `json:"sys"`
	Fields map[string]json.RawMessage `json:"fields"`
}

type rawAsset struct {
	Sys    sys `json:"sys"`
	Fields struct {
		Title string `json:"title"`
		File  *struct {
			URL         string `json:"url"`
			ContentType string `json:"contentType"`
		} `json:"file"`
	} `json:"fields"`
}

type entryCollection struct {
	Sys      sys        `json:"sys"`
	Total    int        `json:"total"`
	Items    []rawEntry `json:"items"`
	Includes struct {
		Asset []rawAsset `json:"Asset"`
	} `json:"includes"`
}

type linkRef struct {
	Sys sys `json:"sys"`
}

// entries converts the collection into portfolio entries. Links to assets
// found in includes become portfolio.Asset; others stay portfolio.Link.
func (c *entryCollection) entries() ([]portfolio.Entry, error) {
	assets := make(map[string]portfolio.Asset, len(c.Includes.Asset))
	for _, a := range c.Includes.Asset {
		if a.Fields.File == nil {
			continue
		}
		assets[a.Sys.ID] = portfolio.Asset{
			ID:          a.Sys.ID,
			Title:       a.Fields.Title,
			FileURL:     a.Fields.File.URL,
			ContentType: a.Fields.File.ContentType,
		}
	}

	entries := make([]portfolio.Entry, 0, len(c.Items))
	for _, item := range c.Items {
		contentType := ""
		if item.Sys.ContentType != nil {
			contentType = item.Sys.ContentType.Sys.ID
		}

		fields := make(map[string]any, len(item.Fields))
		for name, raw := range item.Fields {
			v, err := decodeField(raw, assets)
			if err != nil {
				return nil, fmt.Errorf("entry %s field %q: %w", item.Sys.ID, name, err)
			}
			fields[name] = v
		}

		entries = append(entries, portfolio.Entry{
			ID:          item.Sys.ID,
			ContentType: contentType,
			Fields:      fields,
		})
	}
	return entries, nil
}

func decodeField(raw json.RawMessage, assets map[string]portfolio.Asset) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var ref linkRef
		if err := json.Unmarshal(trimmed, &ref); err == nil && ref.Sys.Type == "Link" {
			return resolve(ref, assets), nil
		}
	case '[':
		var refs []linkRef
		if err := json.Unmarshal(trimmed, &refs); err == nil && len(refs) > 0 && allLinks(refs) {
			list := make([]any, len(refs))
			for i, ref := range refs {
				list[i] = resolve(ref, assets)
			}
			return list, nil
		}
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func allLinks(refs []linkRef) bool {
	for _, r := range refs {
		if r.Sys.Type != "Link" {
			return false
		}
	}
	return true
}

func resolve(ref linkRef, assets map[string]portfolio.Asset) any {
	if ref.Sys.LinkType == "Asset" {
		if a, ok := assets[ref.Sys.ID]; ok {
			return a
		}
	}
	return portfolio.Link{ID: ref.Sys.ID, LinkType: ref.Sys.LinkType}
}
