package service

import (
	"context"
	"log"
	"sync"

	"trends-service/config"
	"trends-service/fetcher"
	"trends-service/metrics"
	"trends-service/model"
	"trends-service/registry"
)

// TrendService runs the aggregation pipeline end to end: resolve seed
// accounts, fan out provider fetches, merge, filter, rank, window.
type TrendService struct {
	cfg      *config.Config
	registry *registry.Registry
	fetcher  *fetcher.Fetcher
}

func New(cfg *config.Config, reg *registry.Registry, f *fetcher.Fetcher) *TrendService {
	return &TrendService{cfg: cfg, registry: reg, fetcher: f}
}

// TimeframeDays maps a user-facing timeframe label to a recency cutoff in
// days. Unknown labels mean no cutoff.
func TimeframeDays(label string) int {
	switch label {
	case "24h", "1d":
		return 1
	case "3d":
		return 3
	case "7d", "week":
		return 7
	case "30d", "month":
		return 30
	default:
		return 0
	}
}

// SearchTrends is the single entry point for the presentation layer. It never
// returns an error: total failure (including a missing provider credential)
// degrades to an empty result. Callers only ever observe fewer results than
// hoped.
func (s *TrendService) SearchTrends(ctx context.Context, query, timeframe, sortBy string) []model.Video {
	if s.cfg.RapidAPIKey == "" {
		log.Printf("[WARN] RAPIDAPI_KEY is not set, returning empty result for query=%q", query)
		return []model.Video{}
	}

	days := TimeframeDays(timeframe)
	accounts := s.registry.Resolve(query, s.cfg.MaxSeedAccounts)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SearchDeadline)
	defer cancel()

	pool := s.aggregate(ctx, accounts, days)
	pool = s.filterByRelevance(pool, query)
	pool = RankAndWindow(pool, sortBy, s.cfg.FetchLimit)

	metrics.SearchesTotal.WithLabelValues(sortBy).Inc()
	return pool
}

type fetchOutcome struct {
	account string
	videos  []model.Video
	err     error
}

// aggregate fans FetchReels out across the accounts on a bounded worker pool
// and merges every successful outcome into one pool. The pool size is fixed
// regardless of account count, capping outbound concurrency against the
// provider. A failed account contributes zero records and never cancels its
// siblings; the join waits for the whole batch.
func (s *TrendService) aggregate(ctx context.Context, accounts []string, timeframeDays int) []model.Video {
	if len(accounts) == 0 {
		return nil
	}

	jobs := make(chan string)
	outcomes := make(chan fetchOutcome, len(accounts))

	workers := s.cfg.FetchWorkers
	if workers > len(accounts) {
		workers = len(accounts)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for account := range jobs {
				videos, err := s.fetcher.FetchReels(ctx, account, timeframeDays)
				outcomes <- fetchOutcome{account: account, videos: videos, err: err}
			}
		}()
	}

	for _, account := range accounts {
		jobs <- account
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	var merged []model.Video
	succeeded := 0
	for outcome := range outcomes {
		if outcome.err != nil {
			log.Printf("[WARN] Fetch failed for @%s: %v", outcome.account, outcome.err)
			continue
		}
		succeeded++
		merged = append(merged, outcome.videos...)
	}

	log.Printf("[INFO] Aggregated %d records from %d/%d accounts", len(merged), succeeded, len(accounts))
	metrics.RecordsAggregated.Add(float64(len(merged)))
	return merged
}
