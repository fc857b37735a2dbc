package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is the canonical, provider-agnostic representation of one short
// video. Every numeric field is always populated (defaulted, possibly
// estimated) so consumers never have to branch on missing values.
type Video struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PlatformID     string             `bson:"platformId" json:"platform_id"`
	Platform       string             `bson:"platform" json:"platform"`
	Title          string             `bson:"title" json:"title"`
	Author         string             `bson:"author" json:"author"`
	Views          int64              `bson:"views" json:"views"`
	Likes          int64              `bson:"likes" json:"likes"`
	Comments       int64              `bson:"comments" json:"comments"`
	EngagementRate float64            `bson:"engagementRate" json:"engagement_rate"`
	ThumbnailURL   string             `bson:"thumbnailUrl" json:"thumbnail_url"`
	VideoURL       string             `bson:"videoUrl" json:"video_url"`
	PublishedAt    string             `bson:"publishedAt" json:"published_at"`
	Transcript     string             `bson:"transcript" json:"transcript"`
	AnomalyScore   float64            `bson:"anomalyScore,omitempty" json:"anomaly_score,omitempty"`
	DiscoveredAt   time.Time          `bson:"discoveredAt,omitempty" json:"discovered_at,omitempty"`
}

// ScanRequest is a radar scan job published via NATS.
type ScanRequest struct {
	Keyword   string `json:"keyword"`
	RequestID string `json:"requestId"`
}

// ScanResult reports the outcome of one radar scan.
type ScanResult struct {
	Keyword     string    `json:"keyword"`
	RequestID   string    `json:"requestId"`
	VideosFound int       `json:"videosFound"`
	NewStored   int       `json:"newStored"`
	ProcessedAt time.Time `json:"processedAt"`
}

// ProfileStats aggregates the recent output of a single account.
type ProfileStats struct {
	Username      string  `json:"username"`
	VideoCount    int     `json:"video_count"`
	TotalViews    int64   `json:"total_views"`
	AvgEngagement float64 `json:"avg_engagement_rate"`
	Videos        []Video `json:"videos"`
}

// AnalysisReport is the structured creative breakdown returned by the
// generative model for one video.
type AnalysisReport struct {
	VisualHook        string   `json:"visual_hook"`
	Summary           string   `json:"summary"`
	EditingTechniques []string `json:"editing_techniques"`
	ScriptIdea        string   `json:"script_idea"`
}
