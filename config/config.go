package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	MongoURI string
	NATSUrl  string

	// Scraping provider (RapidAPI)
	RapidAPIKey     string
	RapidAPIHost    string
	ProviderBaseURL string // overrides the RapidAPI host, used for local testing

	// Generative model
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	AdminEmail    string
	AdminPassword string

	FetchTimeout    time.Duration
	FetchWorkers    int
	MaxSeedAccounts int
	FetchLimit      int
	SearchDeadline  time.Duration

	// Product heuristics. Empirically chosen, kept tunable.
	RelaxThreshold  int
	ViewsMultiplier int64
	AnomalyViews    int64

	RadarInterval  time.Duration
	SearchCacheTTL time.Duration
	FeedCacheTTL   time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:            envOr("PORT", "8080"),
		MongoURI:        os.Getenv("MONGO_URI"),
		NATSUrl:         envOr("NATS_URL", "nats://localhost:4222"),
		RapidAPIKey:     os.Getenv("RAPIDAPI_KEY"),
		RapidAPIHost:    envOr("RAPIDAPI_HOST", "instagram120.p.rapidapi.com"),
		ProviderBaseURL: os.Getenv("PROVIDER_BASE_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-1.5-pro"),
		GeminiBaseURL:   envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AdminEmail:      envOr("ADMIN_EMAIL", "admin@trends.local"),
		AdminPassword:   envOr("ADMIN_PASSWORD", "admin123"),
		FetchTimeout:    envDuration("FETCH_TIMEOUT", 10*time.Second),
		FetchWorkers:    envInt("FETCH_WORKERS", 10),
		MaxSeedAccounts: envInt("MAX_SEED_ACCOUNTS", 20),
		FetchLimit:      envInt("FETCH_LIMIT", 100),
		SearchDeadline:  envDuration("SEARCH_DEADLINE", 45*time.Second),
		RelaxThreshold:  envInt("RELAX_THRESHOLD", 5),
		ViewsMultiplier: int64(envInt("VIEWS_MULTIPLIER", 3)),
		AnomalyViews:    int64(envInt("ANOMALY_VIEWS", 100000)),
		RadarInterval:   envDuration("RADAR_INTERVAL", 30*time.Minute),
		SearchCacheTTL:  envDuration("SEARCH_CACHE_TTL", 5*time.Minute),
		FeedCacheTTL:    envDuration("FEED_CACHE_TTL", 10*time.Minute),
	}

	if cfg.RapidAPIKey == "" {
		log.Printf("[WARN] RAPIDAPI_KEY not set, trend searches will return empty results")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] Invalid %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
