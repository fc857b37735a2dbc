package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"trends-service/model"
)

// AnalyzeVideo asks the generative model for a creative breakdown of one
// video. The most expensive action in the token economy.
func (h *Handler) AnalyzeVideo(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	var body struct {
		Video model.Video `json:"video"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || (body.Video.VideoURL == "" && body.Video.PlatformID == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video with video_url or platform_id is required"})
		return
	}

	if !h.charge(c, user, costVideoAnalyze, "analyze") {
		return
	}

	log.Printf("[INFO] Analyzing video %s for %s", body.Video.VideoURL, user.Email)
	report := h.analyzer.AnalyzeVideo(c.Request.Context(), body.Video)
	c.JSON(http.StatusOK, gin.H{"analysis": report, "video_url": body.Video.VideoURL})
}
