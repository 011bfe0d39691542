package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"manzafir/handlers"
	"manzafir/middleware"
)

func SetupRouter(api *handlers.API, sessions middleware.SessionResolver) *gin.Engine {
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "Manzafir Travel API running",
			"service": "healthy",
		})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Session-ID", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// The recommendation and upload endpoints proxy paid third-party
	// services, so they get a per-IP limit even though they are public.
	limiter := middleware.NewIPRateLimiter(60, time.Minute)

	// Public routes
	router.POST("/api/auth/session-data", api.ProcessSessionData)
	router.GET("/api/auth/google/url", api.GoogleAuthURL)
	router.GET("/api/auth/google/callback", api.GoogleCallback)
	router.POST("/api/auth/google", api.GoogleAuthWithCredential)

	router.POST("/api/recommendations", middleware.RateLimit(limiter), api.GetRecommendations)
	router.POST("/api/upload/image", middleware.RateLimit(limiter), api.UploadImage)

	router.GET("/api/packages", api.ListPackages)
	router.POST("/api/packages", api.CreatePackage)
	router.POST("/api/init-data", api.InitSampleData)

	router.GET("/api/push/vapid-public-key", api.GetVAPIDPublicKey)

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.SessionAuth(sessions))

	protected.POST("/auth/logout", api.Logout)

	protected.GET("/profile", api.GetProfile)
	protected.POST("/profile", api.UpdateProfile)

	protected.GET("/matches", api.GetPotentialMatches)
	protected.POST("/matches/action", api.MatchAction)

	protected.POST("/push/subscribe", api.SubscribePush)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}

func corsOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	return []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8080"}
}
