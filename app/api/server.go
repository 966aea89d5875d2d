package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freetic/freetic/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, apiAccessKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	// Reader endpoints
	r.GET("/feed", handler.GetFeed)
	r.GET("/books", handler.ListBooks)
	r.GET("/books/:id", handler.GetBook)
	r.GET("/shelves", handler.ListShelves)

	r.GET("/history", handler.ListHistory)
	r.POST("/history", handler.AddHistory)
	r.DELETE("/history/:id", handler.DeleteHistoryEntry)
	r.DELETE("/history", handler.ClearHistory)

	r.POST("/ai/recommendations", handler.GetRecommendations)
	r.GET("/quotes/random", handler.GetRandomQuote)
	r.GET("/ads", handler.GetAdConfig)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	// Admin endpoints (conditionally enabled with authentication)
	if apiAccessKey != "" {
		api := r.Group("/api")
		api.Use(authMiddleware(apiAccessKey))
		{
			api.POST("/books", handler.APICreateBook)
			api.PUT("/books/:id", handler.APIUpdateBook)
			api.DELETE("/books/:id", handler.APIDeleteBook)

			api.POST("/shelves", handler.APICreateShelf)
			api.PATCH("/shelves/:id", handler.APIRenameShelf)
			api.DELETE("/shelves/:id", handler.APIDeleteShelf)
			api.POST("/shelves/:id/books", handler.APIAddShelfBook)
			api.DELETE("/shelves/:id/books/:bookId", handler.APIRemoveShelfBook)

			api.PUT("/ads", handler.APIPutAdConfig)

			api.POST("/publish-due", handler.APIPublishDue)
		}
		log.Printf("Admin endpoints enabled with authentication")
	} else {
		log.Printf("Admin endpoints disabled (API_ACCESS_KEY not set)")
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"feed":            "/feed?search=<term>&filter=<selector>&seed=<n>",
			"books":           "/books",
			"book":            "/books/<id>",
			"shelves":         "/shelves",
			"history":         "/history",
			"recommendations": "/ai/recommendations (POST)",
			"quote":           "/quotes/random",
			"ads":             "/ads",
			"health":          "/health",
			"stats":           "/stats",
		}

		// Add admin endpoints if authentication is enabled
		if apiAccessKey != "" {
			endpoints["admin_books"] = "/api/books (requires X-API-Key header)"
			endpoints["admin_shelves"] = "/api/shelves (requires X-API-Key header)"
			endpoints["admin_ads"] = "/api/ads (PUT, requires X-API-Key header)"
		}

		c.JSON(200, gin.H{
			"service":     "Freetic",
			"version":     cfg.GetVersion(),
			"description": "Book discovery service with ranked feeds, reading history, and AI recommendations",
			"endpoints":   endpoints,
			"api_status": map[string]interface{}{
				"enabled":       apiAccessKey != "",
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for admin endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get API key from X-API-Key header
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// Check if API key is provided and matches
		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		// Continue to next middleware/handler
		c.Next()
	}
}
