package service

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"trends-service/model"
)

// AnalyzeProfile fetches one account directly, bypassing the registry, and
// aggregates its recent output. Fetch failure degrades to empty stats.
func (s *TrendService) AnalyzeProfile(ctx context.Context, username string) model.ProfileStats {
	clean := strings.TrimSpace(strings.ReplaceAll(username, "@", ""))

	videos, err := s.fetcher.FetchReels(ctx, clean, 0)
	if err != nil {
		log.Printf("[WARN] Profile fetch failed for @%s: %v", clean, err)
	}

	var totalViews int64
	var erSum float64
	for _, v := range videos {
		totalViews += v.Views
		erSum += v.EngagementRate
	}

	count := len(videos)
	avgER := 0.0
	if count > 0 {
		avgER = math.Round(erSum/float64(count)*100) / 100
	}

	return model.ProfileStats{
		Username:      clean,
		VideoCount:    count,
		TotalViews:    totalViews,
		AvgEngagement: avgER,
		Videos:        videos,
	}
}

// ScoreAnomalies annotates each record with a views-per-like ratio. A high
// ratio flags reach that outruns its engagement, the signature of an
// algorithmic push.
func ScoreAnomalies(videos []model.Video) {
	for i := range videos {
		likes := videos[i].Likes
		if likes < 1 {
			likes = 1
		}
		videos[i].AnomalyScore = math.Round(float64(videos[i].Views)/float64(likes)*10) / 10
	}
}

// SortByAnomaly orders records by descending anomaly score.
func SortByAnomaly(videos []model.Video) {
	sort.SliceStable(videos, func(i, j int) bool { return videos[i].AnomalyScore > videos[j].AnomalyScore })
}
