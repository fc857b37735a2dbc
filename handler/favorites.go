package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"trends-service/model"
)

func (h *Handler) AddFavorite(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	var body struct {
		Video model.Video `json:"video"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Video.VideoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video with video_url is required"})
		return
	}

	if err := h.store.AddFavorite(c.Request.Context(), user.ID, body.Video); err != nil {
		log.Printf("[ERROR] Add favorite failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	var body struct {
		VideoURL string `json:"video_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.VideoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_url is required"})
		return
	}

	if err := h.store.RemoveFavorite(c.Request.Context(), user.ID, body.VideoURL); err != nil {
		log.Printf("[ERROR] Remove favorite failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListFavorites(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	favs, err := h.store.FavoritesByUser(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("[ERROR] List favorites failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favorites"})
		return
	}

	videos := make([]model.Video, 0, len(favs))
	for _, f := range favs {
		videos = append(videos, f.Video)
	}
	c.JSON(http.StatusOK, gin.H{"favorites": videos, "count": len(videos)})
}
