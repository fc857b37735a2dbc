package fetcher

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return payload
}

func TestExtractItemsShapes(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantOK    bool
		wantItems int
	}{
		{
			"edge wrapped with media",
			`{"result":{"edges":[{"node":{"media":{"id":"1"}}},{"node":{"media":{"id":"2"}}}]}}`,
			true, 2,
		},
		{
			"edge wrapped bare node",
			`{"result":{"edges":[{"node":{"id":"1"}}]}}`,
			true, 1,
		},
		{
			"bare array",
			`[{"id":"1"},{"id":"2"},{"id":"3"}]`,
			true, 3,
		},
		{
			"items wrapper",
			`{"items":[{"id":"1"}]}`,
			true, 1,
		},
		{
			"data wrapper",
			`{"data":[{"id":"1"},{"id":"2"}]}`,
			true, 2,
		},
		{
			"unrecognized object",
			`{"message":"rate limited"}`,
			false, 0,
		},
		{
			"scalar",
			`42`,
			false, 0,
		},
		{
			"non-object array entries skipped",
			`[1,"x",{"id":"1"}]`,
			true, 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, ok := extractItems(decode(t, tt.raw))
			if ok != tt.wantOK {
				t.Fatalf("extractItems ok = %v, want %v", ok, tt.wantOK)
			}
			if len(items) != tt.wantItems {
				t.Errorf("extractItems returned %d items, want %d", len(items), tt.wantItems)
			}
		})
	}
}

func TestRawItemNum(t *testing.T) {
	item := rawItem{"like_count": float64(42), "view_count": "1000", "bad": "abc"}

	if n, ok := item.num("like_count"); !ok || n != 42 {
		t.Errorf("num(like_count) = %d, %v; want 42, true", n, ok)
	}
	if n, ok := item.num("view_count"); !ok || n != 1000 {
		t.Errorf("num(view_count) = %d, %v; want 1000, true", n, ok)
	}
	if _, ok := item.num("bad"); ok {
		t.Error("num(bad) matched a non-numeric string")
	}
	if _, ok := item.num("missing"); ok {
		t.Error("num(missing) matched an absent key")
	}
	if n, ok := item.num("missing", "like_count"); !ok || n != 42 {
		t.Errorf("num fallback = %d, %v; want 42, true", n, ok)
	}
}

func TestRawItemCaption(t *testing.T) {
	tests := []struct {
		name string
		item rawItem
		want string
	}{
		{"string caption", rawItem{"caption": "hello"}, "hello"},
		{"structured caption", rawItem{"caption": map[string]any{"text": "hi there"}}, "hi there"},
		{"missing caption", rawItem{}, ""},
		{"null caption", rawItem{"caption": nil}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.caption(); got != tt.want {
				t.Errorf("caption() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRawItemThumbnail(t *testing.T) {
	item := rawItem{
		"image_versions2": map[string]any{
			"candidates": []any{
				map[string]any{"url": "https://cdn/img1.jpg"},
				map[string]any{"url": "https://cdn/img2.jpg"},
			},
		},
	}
	if got := item.thumbnail(); got != "https://cdn/img1.jpg" {
		t.Errorf("thumbnail() = %q, want first candidate", got)
	}

	if got := (rawItem{}).thumbnail(); got != "" {
		t.Errorf("thumbnail() on empty item = %q, want empty", got)
	}

	camel := rawItem{
		"imageVersions2": map[string]any{
			"candidates": []any{map[string]any{"url": "https://cdn/camel.jpg"}},
		},
	}
	if got := camel.thumbnail(); got != "https://cdn/camel.jpg" {
		t.Errorf("thumbnail() camelCase = %q", got)
	}
}
