package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trends-service/handler"
	"trends-service/middleware"
)

func Setup(h *handler.Handler) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(middleware.PrometheusMiddleware("trends-service"))

	// Auth
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)

	// Discovery pipeline
	r.GET("/api/search", h.Search)
	r.GET("/api/home/feed", h.HomeFeed)
	r.GET("/api/anomalous", h.Anomalous)
	r.POST("/api/analyze-profile", h.AnalyzeProfile)
	r.POST("/api/analyze", h.AnalyzeVideo)

	// Favorites & history
	r.GET("/api/favorites", h.ListFavorites)
	r.POST("/api/favorites/add", h.AddFavorite)
	r.POST("/api/favorites/remove", h.RemoveFavorite)
	r.GET("/api/history", h.ListHistory)
	r.DELETE("/api/history/clear", h.ClearHistory)

	// Radar & spy watchlists
	r.GET("/api/radar", h.ListRadarKeywords)
	r.POST("/api/radar/add", h.AddRadarKeyword)
	r.POST("/api/radar/remove", h.RemoveRadarKeyword)
	r.GET("/api/radar/results", h.RadarResults)
	r.GET("/api/spy", h.ListSpyAccounts)
	r.POST("/api/spy/add", h.AddSpyAccount)
	r.POST("/api/spy/remove", h.RemoveSpyAccount)
	r.GET("/api/spy/results", h.SpyResults)

	// Admin
	r.GET("/api/admin/stats", h.AdminStats)
	r.POST("/api/admin/add-tokens", h.AdminAddTokens)

	// Observability
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "trends-service"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "trends-service"})
	})

	return r
}
