package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trends-service/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		RapidAPIKey:     "test-key",
		RapidAPIHost:    "provider.test",
		ProviderBaseURL: baseURL,
		FetchTimeout:    5 * time.Second,
		ViewsMultiplier: 3,
	}
}

func serve(t *testing.T, status int, body string) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("provider called with %s, want POST", r.Method)
		}
		if got := r.Header.Get("x-rapidapi-key"); got != "test-key" {
			t.Errorf("x-rapidapi-key = %q", got)
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewFetcher(testConfig(srv.URL))
}

func TestFetchReelsNormalizesEdgePayload(t *testing.T) {
	f := serve(t, http.StatusOK, `{"result":{"edges":[{"node":{"media":{
		"id":"r1",
		"taken_at":1700000000,
		"like_count":40,
		"comment_count":2,
		"code":"abc123",
		"caption":{"text":"luxury cars on tour"},
		"image_versions2":{"candidates":[{"url":"https://cdn/thumb.jpg"}]}
	}}}]}}`)

	videos, err := f.FetchReels(context.Background(), "rollsroyce", 0)
	require.NoError(t, err)
	require.Len(t, videos, 1)

	v := videos[0]
	assert.Equal(t, "r1", v.PlatformID)
	assert.Equal(t, "instagram", v.Platform)
	assert.Equal(t, "rollsroyce", v.Author)
	assert.Equal(t, "luxury cars on tour", v.Title)
	assert.Equal(t, "luxury cars on tour", v.Transcript)
	assert.Equal(t, int64(40), v.Likes)
	assert.Equal(t, int64(2), v.Comments)
	// views absent: estimated as likes x 3
	assert.Equal(t, int64(120), v.Views)
	assert.Equal(t, 35.0, v.EngagementRate)
	assert.Equal(t, "https://cdn/thumb.jpg", v.ThumbnailURL)
	assert.Equal(t, "https://www.instagram.com/reel/abc123/", v.VideoURL)
	assert.NotEmpty(t, v.PublishedAt)
}

func TestFetchReelsFlatPayloadWithViews(t *testing.T) {
	f := serve(t, http.StatusOK, `{"items":[
		{"pk":"p1","playCount":500,"likeCount":10,"commentCount":0,"caption":"clip one"},
		{"pk":"p2","view_count":5000,"like_count":100,"comment_count":50,"caption":"clip two"}
	]}`)

	videos, err := f.FetchReels(context.Background(), "verge", 0)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, int64(500), videos[0].Views)
	assert.Equal(t, 2.0, videos[0].EngagementRate)
	assert.Equal(t, int64(5000), videos[1].Views)
	assert.Equal(t, 3.0, videos[1].EngagementRate)
	// no short code: falls back to the profile URL
	assert.Equal(t, "https://www.instagram.com/verge/", videos[0].VideoURL)
}

func TestFetchReelsViewsClampedToOne(t *testing.T) {
	f := serve(t, http.StatusOK, `{"items":[{"id":"z","like_count":0,"comment_count":0}]}`)

	videos, err := f.FetchReels(context.Background(), "quiet", 0)
	require.NoError(t, err)
	require.Len(t, videos, 1)

	assert.Equal(t, int64(1), videos[0].Views)
	assert.Equal(t, 0.0, videos[0].EngagementRate)
}

func TestFetchReelsTimeframeFilter(t *testing.T) {
	recent := time.Now().Add(-24 * time.Hour).Unix()
	old := time.Now().AddDate(0, 0, -30).Unix()
	f := serve(t, http.StatusOK, fmt.Sprintf(`{"items":[
		{"id":"new","taken_at":%d,"like_count":1},
		{"id":"old","taken_at":%d,"like_count":1},
		{"id":"undated","like_count":1}
	]}`, recent, old))

	videos, err := f.FetchReels(context.Background(), "acct", 7)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "new", videos[0].PlatformID)
	// no timestamp: kept, treated as always within timeframe
	assert.Equal(t, "undated", videos[1].PlatformID)
	assert.Empty(t, videos[1].PublishedAt)
}

func TestFetchReelsDefaultTitle(t *testing.T) {
	f := serve(t, http.StatusOK, `{"items":[{"id":"1","like_count":5}]}`)

	videos, err := f.FetchReels(context.Background(), "natgeo", 0)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "Reel from @natgeo", videos[0].Title)
}

func TestFetchReelsProviderError(t *testing.T) {
	f := serve(t, http.StatusTooManyRequests, `{"message":"slow down"}`)

	videos, err := f.FetchReels(context.Background(), "acct", 0)
	assert.Error(t, err)
	assert.Empty(t, videos)
}

func TestFetchReelsMalformedBody(t *testing.T) {
	f := serve(t, http.StatusOK, `{"result": not-json`)

	videos, err := f.FetchReels(context.Background(), "acct", 0)
	assert.Error(t, err)
	assert.Empty(t, videos)
}

func TestFetchReelsUnrecognizedShape(t *testing.T) {
	f := serve(t, http.StatusOK, `{"message":"nothing here"}`)

	videos, err := f.FetchReels(context.Background(), "acct", 0)
	assert.NoError(t, err)
	assert.Empty(t, videos)
}

func TestWithinTimeframe(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		takenAt int64
		days    int
		want    bool
	}{
		{"no cutoff", now.AddDate(0, 0, -100).Unix(), 0, true},
		{"zero timestamp kept", 0, 7, true},
		{"inside window", now.AddDate(0, 0, -2).Unix(), 7, true},
		{"outside window", now.AddDate(0, 0, -8).Unix(), 7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withinTimeframe(tt.takenAt, tt.days, now); got != tt.want {
				t.Errorf("withinTimeframe = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 150); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := make([]rune, 200)
	for i := range long {
		long[i] = 'x'
	}
	if got := truncate(string(long), 150); len([]rune(got)) != 150 {
		t.Errorf("truncate long = %d runes, want 150", len([]rune(got)))
	}
}
