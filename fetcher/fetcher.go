package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"trends-service/config"
	"trends-service/metrics"
	"trends-service/model"
)

const platform = "instagram"

// Fetcher pulls the recent reels of a single account from the scraping
// provider and normalizes them into canonical video records.
type Fetcher struct {
	cfg      *config.Config
	client   *http.Client
	endpoint string
}

func NewFetcher(cfg *config.Config) *Fetcher {
	endpoint := cfg.ProviderBaseURL
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s/api/instagram/reels", cfg.RapidAPIHost)
	}
	return &Fetcher{
		cfg:      cfg,
		endpoint: endpoint,
		client: &http.Client{
			// Short timeout so one slow account cannot stall the batch.
			Timeout: cfg.FetchTimeout,
		},
	}
}

type reelsRequest struct {
	Username string `json:"username"`
	MaxID    string `json:"maxId"`
}

// FetchReels fetches and normalizes the recent reels of one account.
// timeframeDays limits results to the last N days; 0 means no cutoff.
// Transport and decode failures are returned as errors with an empty slice;
// the aggregator logs and folds them, they never abort a batch.
func (f *Fetcher) FetchReels(ctx context.Context, username string, timeframeDays int) ([]model.Video, error) {
	body, err := json.Marshal(reelsRequest{Username: username})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-host", f.cfg.RapidAPIHost)
	req.Header.Set("x-rapidapi-key", f.cfg.RapidAPIKey)

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.AccountFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch reels for @%s: %w", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.AccountFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("provider returned %d for @%s", resp.StatusCode, username)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.AccountFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode reels for @%s: %w", username, err)
	}

	items, ok := extractItems(payload)
	if !ok {
		log.Printf("[WARN] Unrecognized payload shape for @%s, skipping", username)
		metrics.AccountFetchesTotal.WithLabelValues("unrecognized").Inc()
		return nil, nil
	}

	now := time.Now()
	var videos []model.Video
	for _, item := range items {
		video, ok := f.buildVideo(item, username, now, timeframeDays)
		if !ok {
			continue
		}
		videos = append(videos, video)
	}

	metrics.AccountFetchesTotal.WithLabelValues("ok").Inc()
	return videos, nil
}

// buildVideo normalizes one raw provider item. Missing fields are defaulted
// or estimated, never left absent. The second return value is false when the
// item falls outside the timeframe.
func (f *Fetcher) buildVideo(item rawItem, username string, now time.Time, timeframeDays int) (model.Video, bool) {
	takenAt, hasTakenAt := item.num("taken_at", "takenAt", "device_timestamp")
	// Items without a timestamp are kept: absence of data is not evidence
	// the post is old.
	if hasTakenAt && !withinTimeframe(takenAt, timeframeDays, now) {
		return model.Video{}, false
	}

	likes, _ := item.num("like_count", "likeCount")
	comments, _ := item.num("comment_count", "commentCount")

	views, hasViews := item.num("play_count", "playCount", "view_count", "viewCount")
	if !hasViews {
		// The API does not always surface play counts; likes are a weak but
		// monotonic proxy.
		views = likes * f.cfg.ViewsMultiplier
	}
	if views < 1 {
		views = 1
	}

	er := round2(float64(likes+comments) / float64(views) * 100)

	code := item.str("code", "shortCode")
	videoURL := fmt.Sprintf("https://www.instagram.com/%s/", username)
	if code != "" {
		videoURL = fmt.Sprintf("https://www.instagram.com/reel/%s/", code)
	}

	publishedAt := ""
	if hasTakenAt {
		publishedAt = time.Unix(takenAt, 0).UTC().Format(time.RFC3339)
	}

	caption := item.caption()
	title := truncate(caption, 150)
	if title == "" {
		title = "Reel from @" + username
	}

	return model.Video{
		PlatformID:     item.str("id", "pk"),
		Platform:       platform,
		Title:          title,
		Author:         username,
		Views:          views,
		Likes:          likes,
		Comments:       comments,
		EngagementRate: er,
		ThumbnailURL:   item.thumbnail(),
		VideoURL:       videoURL,
		PublishedAt:    publishedAt,
		Transcript:     caption,
	}, true
}

func withinTimeframe(takenAt int64, days int, now time.Time) bool {
	if days <= 0 || takenAt == 0 {
		return true
	}
	cutoff := now.AddDate(0, 0, -days)
	return !time.Unix(takenAt, 0).Before(cutoff)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
