package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wayfare/tripplan-backend-go/internal/config"
	"github.com/wayfare/tripplan-backend-go/internal/handler"
	"github.com/wayfare/tripplan-backend-go/internal/middleware"
)

// SetupRouter wires middleware and routes
func SetupRouter(cfg *config.Config, optimization *handler.OptimizationHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Trip Planning API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))
	api.Use(middleware.Auth(cfg.JWTSecret, cfg.AuthDisabled))
	{
		trips := api.Group("/trips")
		{
			trips.POST("/:tripId/optimize", optimization.Optimize)
			trips.GET("/:tripId/result", optimization.GetResult)
			trips.GET("/:tripId/results", optimization.ListResults)
		}
	}

	return r
}
