package fetcher

import "strconv"

// The provider schema is not guaranteed: the same endpoint has been observed
// returning an edge-wrapped graph payload, a bare item array, and flat
// wrappers keyed by "items" or "data". Extraction tries each known shape in a
// fixed priority order; an unrecognized shape yields no items rather than an
// error so a single odd response never fails a batch.

type rawItem map[string]any

// extractItems pulls the media item list out of a decoded provider payload.
// The second return value is false when no known shape matched.
func extractItems(payload any) ([]rawItem, bool) {
	if obj, ok := payload.(map[string]any); ok {
		if items, ok := edgeItems(obj); ok {
			return items, true
		}
		if items, ok := listItems(obj["items"]); ok {
			return items, true
		}
		if items, ok := listItems(obj["data"]); ok {
			return items, true
		}
		return nil, false
	}
	return listItems(payload)
}

// edgeItems handles the graph shape: {"result": {"edges": [{"node": {"media": {...}}}]}}.
// Nodes without a "media" wrapper are taken as the item themselves.
func edgeItems(obj map[string]any) ([]rawItem, bool) {
	result, ok := obj["result"].(map[string]any)
	if !ok {
		return nil, false
	}
	edges, ok := result["edges"].([]any)
	if !ok || len(edges) == 0 {
		return nil, false
	}

	items := make([]rawItem, 0, len(edges))
	for _, e := range edges {
		edge, ok := e.(map[string]any)
		if !ok {
			continue
		}
		node, ok := edge["node"].(map[string]any)
		if !ok {
			continue
		}
		if media, ok := node["media"].(map[string]any); ok {
			items = append(items, media)
			continue
		}
		items = append(items, node)
	}
	return items, true
}

// listItems handles a bare JSON array of item objects.
func listItems(v any) ([]rawItem, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	items := make([]rawItem, 0, len(list))
	for _, e := range list {
		if item, ok := e.(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items, true
}

// str returns the first non-empty string value among the given keys.
func (it rawItem) str(keys ...string) string {
	for _, k := range keys {
		if s, ok := it[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// num returns the first numeric value among the given keys. JSON numbers
// decode as float64; numeric strings are tolerated too.
func (it rawItem) num(keys ...string) (int64, bool) {
	for _, k := range keys {
		switch v := it[k].(type) {
		case float64:
			return int64(v), true
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// caption extracts the caption text, which arrives either as a plain string
// or as a structured {"text": "..."} object.
func (it rawItem) caption() string {
	switch v := it["caption"].(type) {
	case string:
		return v
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return text
		}
	}
	return ""
}

// thumbnail returns the first candidate image URL, or "".
func (it rawItem) thumbnail() string {
	for _, k := range []string{"image_versions2", "imageVersions2"} {
		versions, ok := it[k].(map[string]any)
		if !ok {
			continue
		}
		candidates, ok := versions["candidates"].([]any)
		if !ok || len(candidates) == 0 {
			continue
		}
		if first, ok := candidates[0].(map[string]any); ok {
			if url, ok := first["url"].(string); ok {
				return url
			}
		}
	}
	return ""
}
