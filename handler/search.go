package handler

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"

	"trends-service/model"
	"trends-service/service"
	"trends-service/utils"
)

// Search runs the aggregation pipeline for a free-text query. First-page
// searches are charged and recorded in the user's history.
func (h *Handler) Search(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	query := c.Query("q")
	timeframe := c.DefaultQuery("timeframe", "all")
	sortBy := c.DefaultQuery("sort_by", "views")

	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	log.Printf("[INFO] Search called with q=%q, timeframe=%s, sort_by=%s", query, timeframe, sortBy)

	cacheKey := fmt.Sprintf("search_%s_%s_%s", query, timeframe, sortBy)
	videos, cached := h.cachedVideos(cacheKey)
	if !cached {
		videos = h.trends.SearchTrends(c.Request.Context(), query, timeframe, sortBy)
		h.cache.Set(cacheKey, videos, h.cfg.SearchCacheTTL)

		if len(videos) > 0 {
			if !h.charge(c, user, costSearch, "search") {
				return
			}
			h.recordHistory(c, user, query, videos)
		}
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos), "query": query})
}

func (h *Handler) recordHistory(c *gin.Context, user *model.User, query string, videos []model.Video) {
	previews := make([]string, 0, 4)
	for _, v := range videos {
		if len(previews) == 4 {
			break
		}
		previews = append(previews, v.ThumbnailURL)
	}
	err := h.store.AddHistory(c.Request.Context(), model.SearchHistory{
		UserID:            user.ID,
		Query:             query,
		ResultsCount:      len(videos),
		PreviewThumbnails: previews,
	})
	if err != nil {
		log.Printf("[WARN] Failed to record search history: %v", err)
	}
}

// HomeFeed serves the trending idea feed: a random curated topic, shuffled.
func (h *Handler) HomeFeed(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	cacheKey := "home_feed"
	videos, cached := h.cachedVideos(cacheKey)
	if !cached {
		keyword := utils.TrendingTopics[rand.Intn(len(utils.TrendingTopics))]
		log.Printf("[INFO] Home feed refreshing with topic=%s", keyword)

		videos = h.trends.SearchTrends(c.Request.Context(), keyword, "all", "views")
		rand.Shuffle(len(videos), func(i, j int) { videos[i], videos[j] = videos[j], videos[i] })
		h.cache.Set(cacheKey, videos, h.cfg.FeedCacheTTL)

		if len(videos) > 0 && !h.charge(c, user, costFeedLoad, "feed") {
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

// Anomalous serves records whose reach outruns their engagement. The pool
// comes from a generic discovery query and is re-scored by views/likes ratio.
func (h *Handler) Anomalous(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	sortBy := c.DefaultQuery("sort_by", "anomaly")
	timeframe := c.DefaultQuery("timeframe", "3d")

	cacheKey := fmt.Sprintf("anomalous_%s_%s", timeframe, sortBy)
	videos, cached := h.cachedVideos(cacheKey)
	if !cached {
		videos = h.trends.SearchTrends(c.Request.Context(), "viral trending wow epic", timeframe, "views")
		service.ScoreAnomalies(videos)
		if sortBy == "anomaly" {
			service.SortByAnomaly(videos)
		}
		h.cache.Set(cacheKey, videos, h.cfg.FeedCacheTTL)

		if !h.charge(c, user, costAnomalous, "anomalous") {
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

// AnalyzeProfile aggregates the recent output of one account.
func (h *Handler) AnalyzeProfile(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	username := c.PostForm("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	if !h.charge(c, user, costProfileScan, "profile") {
		return
	}

	stats := h.trends.AnalyzeProfile(c.Request.Context(), username)
	log.Printf("[INFO] Profile scan for @%s: %d videos, %d total views", stats.Username, stats.VideoCount, stats.TotalViews)
	c.JSON(http.StatusOK, stats)
}
