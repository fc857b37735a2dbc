package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trends-service/config"
	"trends-service/fetcher"
	"trends-service/model"
	"trends-service/registry"
)

// provider simulates the upstream scraping API. Each request is answered
// according to the POSTed username: a canned payload, a 500, or a hang.
type provider struct {
	payloads map[string]string
	failing  map[string]bool
	calls    atomic.Int64
}

func (p *provider) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.calls.Add(1)
		var req struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("provider got undecodable body: %v", err)
		}
		if p.failing[req.Username] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body, ok := p.payloads[req.Username]
		if !ok {
			body = `{"items":[]}`
		}
		fmt.Fprint(w, body)
	}
}

func reelsPayload(clips ...model.Video) string {
	items := make([]map[string]any, len(clips))
	for i, c := range clips {
		items[i] = map[string]any{
			"id":            c.PlatformID,
			"play_count":    c.Views,
			"like_count":    c.Likes,
			"comment_count": c.Comments,
			"caption":       c.Transcript,
		}
	}
	raw, _ := json.Marshal(map[string]any{"items": items})
	return string(raw)
}

func testService(t *testing.T, p *provider, pools map[string][]string, limit int) *TrendService {
	t.Helper()
	srv := httptest.NewServer(p.handler(t))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		RapidAPIKey:     "test-key",
		RapidAPIHost:    "provider.test",
		ProviderBaseURL: srv.URL,
		FetchTimeout:    5 * time.Second,
		FetchWorkers:    10,
		MaxSeedAccounts: 20,
		FetchLimit:      limit,
		SearchDeadline:  10 * time.Second,
		RelaxThreshold:  5,
		ViewsMultiplier: 3,
	}
	return New(cfg, registry.NewFromPools(pools), fetcher.NewFetcher(cfg))
}

func TestSearchTrendsRanksAndWindows(t *testing.T) {
	p := &provider{payloads: map[string]string{
		"alpha": reelsPayload(
			model.Video{PlatformID: "a1", Views: 500, Likes: 10, Transcript: "luxury watch"},
			model.Video{PlatformID: "a2", Views: 10, Likes: 1, Transcript: "luxury yacht"},
		),
		"beta": reelsPayload(
			model.Video{PlatformID: "b1", Views: 5000, Likes: 200, Transcript: "luxury jet"},
		),
	}}
	s := testService(t, p, map[string][]string{
		"luxury":  {"alpha", "beta"},
		"default": {"fallback"},
	}, 2)

	got := s.SearchTrends(context.Background(), "luxury", "all", "views")
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].PlatformID)
	assert.Equal(t, "a1", got[1].PlatformID)
}

func TestSearchTrendsPartialFailure(t *testing.T) {
	// One seed account fails outright; its siblings still contribute and the
	// search succeeds with a smaller pool.
	p := &provider{
		payloads: map[string]string{
			"good": reelsPayload(
				model.Video{PlatformID: "g1", Views: 100, Likes: 5, Transcript: "tech review"},
			),
		},
		failing: map[string]bool{"bad": true},
	}
	s := testService(t, p, map[string][]string{
		"tech":    {"good", "bad"},
		"default": {"fallback"},
	}, 100)

	got := s.SearchTrends(context.Background(), "tech", "all", "views")
	require.Len(t, got, 1)
	assert.Equal(t, "g1", got[0].PlatformID)
	assert.Equal(t, int64(2), p.calls.Load(), "both accounts should be attempted")
}

func TestSearchTrendsAllAccountsFail(t *testing.T) {
	p := &provider{failing: map[string]bool{"one": true, "two": true}}
	s := testService(t, p, map[string][]string{
		"tech":    {"one", "two"},
		"default": {"fallback"},
	}, 100)

	got := s.SearchTrends(context.Background(), "tech", "all", "views")
	assert.Empty(t, got)
}

func TestSearchTrendsMissingProviderKey(t *testing.T) {
	s := New(&config.Config{}, registry.New(), fetcher.NewFetcher(&config.Config{}))

	got := s.SearchTrends(context.Background(), "anything", "all", "views")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchTrendsGenericQueryKeepsEverything(t *testing.T) {
	p := &provider{payloads: map[string]string{
		"acct": reelsPayload(
			model.Video{PlatformID: "x1", Views: 9, Likes: 1, Transcript: "totally unrelated caption"},
		),
	}}
	s := testService(t, p, map[string][]string{"default": {"acct"}}, 100)

	got := s.SearchTrends(context.Background(), "viral", "all", "views")
	require.Len(t, got, 1)
}

func TestTimeframeDays(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"24h", 1},
		{"1d", 1},
		{"3d", 3},
		{"7d", 7},
		{"week", 7},
		{"30d", 30},
		{"month", 30},
		{"all", 0},
		{"", 0},
		{"nonsense", 0},
	}
	for _, tt := range tests {
		if got := TimeframeDays(tt.label); got != tt.want {
			t.Errorf("TimeframeDays(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestAnalyzeProfile(t *testing.T) {
	p := &provider{payloads: map[string]string{
		"creator": reelsPayload(
			model.Video{PlatformID: "c1", Views: 1000, Likes: 100, Comments: 0},
			model.Video{PlatformID: "c2", Views: 3000, Likes: 60, Comments: 0},
		),
	}}
	s := testService(t, p, map[string][]string{"default": {"x"}}, 100)

	stats := s.AnalyzeProfile(context.Background(), "@creator")
	assert.Equal(t, "creator", stats.Username)
	assert.Equal(t, 2, stats.VideoCount)
	assert.Equal(t, int64(4000), stats.TotalViews)
	// ERs are 10.0 and 2.0, averaged to 6.0
	assert.Equal(t, 6.0, stats.AvgEngagement)
	require.Len(t, stats.Videos, 2)
}

func TestAnalyzeProfileFetchFailure(t *testing.T) {
	p := &provider{failing: map[string]bool{"gone": true}}
	s := testService(t, p, map[string][]string{"default": {"x"}}, 100)

	stats := s.AnalyzeProfile(context.Background(), "gone")
	assert.Equal(t, 0, stats.VideoCount)
	assert.Empty(t, stats.Videos)
}

func TestScoreAnomalies(t *testing.T) {
	videos := []model.Video{
		{PlatformID: "pushed", Views: 100000, Likes: 50},
		{PlatformID: "normal", Views: 1000, Likes: 100},
		{PlatformID: "zero-likes", Views: 500, Likes: 0},
	}
	ScoreAnomalies(videos)

	assert.Equal(t, 2000.0, videos[0].AnomalyScore)
	assert.Equal(t, 10.0, videos[1].AnomalyScore)
	// zero likes clamp to one instead of dividing by zero
	assert.Equal(t, 500.0, videos[2].AnomalyScore)

	SortByAnomaly(videos)
	assert.Equal(t, "pushed", videos[0].PlatformID)
	assert.Equal(t, "zero-likes", videos[1].PlatformID)
	assert.Equal(t, "normal", videos[2].PlatformID)
}
