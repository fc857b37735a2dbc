package service

import (
	"log"
	"strings"

	"trends-service/model"
	"trends-service/registry"
)

// genericQueries are discovery-mode sentinels. Seed accounts are already a
// best-effort topical match, so these skip lexical filtering entirely.
var genericQueries = map[string]struct{}{
	"":                        {},
	"viral":                   {},
	"trending":                {},
	"wow":                     {},
	"epic":                    {},
	"viral trending wow epic": {},
}

// filterByRelevance narrows the pool to records whose caption or author
// contains at least one query word. When the strict filter retains fewer than
// the relaxation threshold, the full pool is returned instead: seed-account
// selection already encodes topicality, and an over-strict lexical filter
// should not starve the user when the pool is merely small.
func (s *TrendService) filterByRelevance(videos []model.Video, query string) []model.Video {
	q := strings.ToLower(strings.TrimSpace(query))
	if _, generic := genericQueries[q]; generic {
		return videos
	}

	words := strings.Fields(registry.Normalize(query))
	var filtered []model.Video
	for _, v := range videos {
		corpus := strings.ToLower(v.Transcript + " " + v.Author)
		for _, w := range words {
			if strings.Contains(corpus, w) {
				filtered = append(filtered, v)
				break
			}
		}
	}

	if len(filtered) < s.cfg.RelaxThreshold {
		log.Printf("[INFO] Relevance filter kept %d/%d records for %q, relaxing to full pool",
			len(filtered), len(videos), query)
		return videos
	}
	return filtered
}
