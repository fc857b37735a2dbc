package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trends-service/service"
)

// Radar keywords and spy accounts are persisted watchlists. The radar worker
// re-scans active keywords on an interval; spy results are fetched on demand.

func (h *Handler) AddRadarKeyword(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}

	keyword := strings.TrimSpace(c.PostForm("keyword"))
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword is required"})
		return
	}

	if err := h.store.AddRadarKeyword(c.Request.Context(), keyword); err != nil {
		log.Printf("[ERROR] Add radar keyword failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add keyword"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) RemoveRadarKeyword(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}

	keyword := strings.TrimSpace(c.PostForm("keyword"))
	if err := h.store.RemoveRadarKeyword(c.Request.Context(), keyword); err != nil {
		log.Printf("[ERROR] Remove radar keyword failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove keyword"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListRadarKeywords(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}

	keywords, err := h.store.ListRadarKeywords(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] List radar keywords failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load keywords"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": keywords, "count": len(keywords)})
}

// RadarResults runs an on-demand scan for one watched keyword.
func (h *Handler) RadarResults(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}

	keyword := c.Query("keyword")
	sortBy := c.DefaultQuery("sort_by", "views")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword is required"})
		return
	}

	videos := h.trends.SearchTrends(c.Request.Context(), keyword, "all", sortBy)
	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos), "keyword": keyword})
}

func (h *Handler) AddSpyAccount(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}

	username := strings.TrimSpace(strings.ReplaceAll(c.PostForm("username"), "@", ""))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	if err := h.store.AddSpyAccount(c.Request.Context(), username); err != nil {
		log.Printf("[ERROR] Add spy account failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) RemoveSpyAccount(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	if err := h.store.RemoveSpyAccount(c.Request.Context(), username); err != nil {
		log.Printf("[ERROR] Remove spy account failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListSpyAccounts(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}

	accounts, err := h.store.ListSpyAccounts(c.Request.Context())
	if err != nil {
		log.Printf("[ERROR] List spy accounts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts, "count": len(accounts)})
}

// SpyResults fetches the watched account's recent videos directly.
func (h *Handler) SpyResults(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}

	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	stats := h.trends.AnalyzeProfile(c.Request.Context(), username)
	videos := service.RankAndWindow(stats.Videos, c.DefaultQuery("sort_by", "views"), 20)
	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos), "username": stats.Username})
}
