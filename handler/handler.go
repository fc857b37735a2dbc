package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"trends-service/analyzer"
	"trends-service/auth"
	"trends-service/cache"
	"trends-service/config"
	"trends-service/metrics"
	"trends-service/model"
	"trends-service/service"
	"trends-service/store"
)

// Token costs per action.
const (
	costFeedLoad     = 1
	costSearch       = 2
	costAnomalous    = 3
	costProfileScan  = 5
	costVideoAnalyze = 10
)

type Handler struct {
	cfg      *config.Config
	store    *store.Store
	trends   *service.TrendService
	cache    *cache.Cache
	sessions *auth.Sessions
	analyzer *analyzer.Analyzer
}

func New(cfg *config.Config, st *store.Store, trends *service.TrendService, c *cache.Cache, sessions *auth.Sessions, an *analyzer.Analyzer) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    st,
		trends:   trends,
		cache:    c,
		sessions: sessions,
		analyzer: an,
	}
}

// currentUser resolves the session cookie to a user, or nil.
func (h *Handler) currentUser(c *gin.Context) *model.User {
	cookie, err := c.Cookie(auth.SessionCookie)
	if err != nil {
		return nil
	}
	userID, ok := h.sessions.Lookup(cookie)
	if !ok {
		return nil
	}
	user, err := h.store.UserByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] Session user lookup failed: %v", err)
		return nil
	}
	return user
}

// requireUser aborts with 401 when no user is logged in.
func (h *Handler) requireUser(c *gin.Context) (*model.User, bool) {
	user := h.currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}
	return user, true
}

// requireAdmin aborts with 403 when the user is not an admin.
func (h *Handler) requireAdmin(c *gin.Context) (*model.User, bool) {
	user, ok := h.requireUser(c)
	if !ok {
		return nil, false
	}
	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return nil, false
	}
	return user, true
}

// charge deducts tokens for an action, rejecting the request when the user
// cannot afford it.
func (h *Handler) charge(c *gin.Context, user *model.User, amount int, action string) bool {
	err := h.store.DeductTokens(c.Request.Context(), user, amount)
	if err == store.ErrInsufficientTokens {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient tokens"})
		return false
	}
	if err != nil {
		log.Printf("[ERROR] Token deduction failed for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token accounting failed"})
		return false
	}
	metrics.TokensSpent.WithLabelValues(action).Add(float64(amount))
	return true
}

// cachedVideos reads a video list from the response cache.
func (h *Handler) cachedVideos(key string) ([]model.Video, bool) {
	v, ok := h.cache.Get(key)
	if !ok {
		metrics.CacheMisses.Inc()
		return nil, false
	}
	videos, ok := v.([]model.Video)
	if !ok {
		metrics.CacheMisses.Inc()
		return nil, false
	}
	metrics.CacheHits.Inc()
	return videos, true
}
