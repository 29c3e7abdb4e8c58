package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/minhle/fnb-optimizer/internal/api/handlers"
	"github.com/minhle/fnb-optimizer/internal/api/middleware"
	"github.com/minhle/fnb-optimizer/internal/service"
)

func NewRouter(optimizerService *service.OptimizerService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if optimizerService != nil {
		optimizerHandler := handlers.NewOptimizerHandler(optimizerService)
		optimizerGroup := apiGroup.Group("/optimizer")
		{
			optimizerGroup.GET("/forecast", optimizerHandler.GetForecast)
			optimizerGroup.GET("/restocking", optimizerHandler.GetRestockingNeeds)
			optimizerGroup.GET("/expiry", optimizerHandler.GetNearExpiry)
			optimizerGroup.GET("/recommendations", optimizerHandler.GetRecommendations)
			optimizerGroup.GET("/report", optimizerHandler.GetReport)
			optimizerGroup.POST("/report/invalidate", optimizerHandler.InvalidateReports)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
