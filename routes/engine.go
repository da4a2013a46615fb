package routes

import (
	"net/http"

	"delivrya/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewEngine builds the gin engine with health, welcome and API routes
func NewEngine(log *zap.Logger) *gin.Engine {
	log = logger.OrNop(log)
	r := gin.New()
	r.Use(gin.Recovery(), logger.Gin(log))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Delivrya API",
			"version": "1.0.0",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":      "Bienvenue à Delivrya",
			"docs":         "/api/state-machine",
			"health":       "/health",
			"translations": "/api/translations/fr",
		})
	})

	SetupRoutes(r)
	return r
}

// NewHandler wraps the engine with CORS for the web build of the app
func NewHandler(log *zap.Logger) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
	})
	return c.Handler(NewEngine(log))
}
