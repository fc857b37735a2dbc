package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListHistory(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	records, err := h.store.HistoryByUser(c.Request.Context(), user.ID, 50)
	if err != nil {
		log.Printf("[ERROR] List history failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records, "count": len(records)})
}

func (h *Handler) ClearHistory(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	if err := h.store.ClearHistory(c.Request.Context(), user.ID); err != nil {
		log.Printf("[ERROR] Clear history failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
