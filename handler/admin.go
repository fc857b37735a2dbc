package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) AdminStats(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	ctx := c.Request.Context()
	totalUsers, err := h.store.CountUsers(ctx)
	if err != nil {
		log.Printf("[ERROR] Count users failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	totalSearches, err := h.store.CountSearches(ctx)
	if err != nil {
		log.Printf("[ERROR] Count searches failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	users, err := h.store.ListUsers(ctx)
	if err != nil {
		log.Printf("[ERROR] List users failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":    totalUsers,
		"total_searches": totalSearches,
		"users":          users,
	})
}

func (h *Handler) AdminAddTokens(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	var body struct {
		UserID string `form:"user_id" json:"user_id" binding:"required"`
		Amount int    `form:"amount" json:"amount" binding:"required"`
	}
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and amount are required"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	if err := h.store.AddTokens(c.Request.Context(), userID, body.Amount); err != nil {
		log.Printf("[ERROR] Add tokens failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add tokens"})
		return
	}
	log.Printf("[INFO] Granted %d tokens to user %s", body.Amount, body.UserID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
