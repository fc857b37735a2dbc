package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trends-service/auth"
	"trends-service/model"
)

type credentials struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Name     string `form:"name" json:"name"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBind(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	if creds.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(creds.Email))
	existing, err := h.store.UserByEmail(c.Request.Context(), email)
	if err != nil {
		log.Printf("[ERROR] Register lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already taken"})
		return
	}

	user := &model.User{
		Email:        email,
		Name:         creds.Name,
		PasswordHash: auth.HashPassword(creds.Password),
		Role:         model.RoleUser,
		Tokens:       100,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		log.Printf("[ERROR] Register insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	h.startSession(c, user)
	log.Printf("[INFO] Registered user %s", user.Email)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBind(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(creds.Email))
	user, err := h.store.UserByEmail(c.Request.Context(), email)
	if err != nil {
		log.Printf("[ERROR] Login lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if user == nil || !auth.VerifyPassword(creds.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	h.startSession(c, user)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil {
		h.sessions.Destroy(cookie)
	}
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) startSession(c *gin.Context, user *model.User) {
	sessionID := h.sessions.Create(user.ID)
	c.SetCookie(auth.SessionCookie, sessionID, int(auth.SessionTTL.Seconds()), "/", "", false, true)
}
