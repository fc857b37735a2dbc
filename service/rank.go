package service

import (
	"sort"

	"trends-service/model"
)

// RankAndWindow sorts the pool by the requested criterion and truncates it to
// limit. The sort is stable so ties keep their prior relative order and
// re-sorting a sorted pool is a no-op. An unrecognized criterion leaves the
// input order unchanged.
func RankAndWindow(videos []model.Video, sortBy string, limit int) []model.Video {
	switch sortBy {
	case "views":
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].Views > videos[j].Views })
	case "er":
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].EngagementRate > videos[j].EngagementRate })
	case "likes":
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].Likes > videos[j].Likes })
	case "recent":
		// RFC 3339 timestamps compare lexicographically; records without one
		// sort as empty strings, after everything dated.
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].PublishedAt > videos[j].PublishedAt })
	}

	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}
	return videos
}
