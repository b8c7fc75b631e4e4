package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitcheckapp/backend/internal/auth"
	"github.com/fitcheckapp/backend/internal/cache"
	"github.com/fitcheckapp/backend/internal/collections"
	"github.com/fitcheckapp/backend/internal/database"
	"github.com/fitcheckapp/backend/internal/handlers"
	"github.com/fitcheckapp/backend/internal/logger"
	"github.com/fitcheckapp/backend/internal/metrics"
	"github.com/fitcheckapp/backend/internal/middleware"
	"github.com/fitcheckapp/backend/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Structured logging with rotation
	if err := logger.Initialize(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FILE")); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	log.Println("=== Fitcheck server starting ===")

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Prometheus metrics
	metrics.Initialize()

	// Redis is optional - the feed total cache degrades to DB counts
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost != "" {
		redisClient, err := cache.NewRedisClient(redisHost, os.Getenv("REDIS_PORT"), os.Getenv("REDIS_PASSWORD"))
		if err != nil {
			log.Printf("Warning: Redis unavailable, feed counts will hit the database: %v", err)
		} else {
			defer redisClient.Close()
		}
	}

	// Auth service
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Fatalf("JWT_SECRET environment variable is required")
	}
	authService := auth.NewService(jwtSecret)

	// S3 uploader
	s3Uploader, err := storage.NewS3Uploader(
		os.Getenv("AWS_REGION"),
		os.Getenv("AWS_BUCKET"),
		os.Getenv("CDN_BASE_URL"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize S3 uploader: %v", err)
	}

	// Check S3 access (skip for development)
	if err := s3Uploader.CheckBucketAccess(context.Background()); err != nil {
		log.Printf("Warning: S3 bucket access failed: %v", err)
		log.Println("Continuing without S3 - image uploads will fail")
	}

	// Initialize handlers
	h := handlers.NewHandlers(s3Uploader, collections.NewStore(database.DB))

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// CORS middleware
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"} // Configure properly for production
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "fitcheck-backend",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Like toggles
		api.POST("/testendpoint", h.AddLike)
		api.DELETE("/testendpoint", h.RemoveLike)

		// Saved collections
		api.POST("/profile", h.SavePost)
		api.DELETE("/profile", h.UnsavePost)

		// Posts: batch fetch or create on POST, cascade delete on DELETE
		api.POST("/posts", h.HandlePosts)
		api.DELETE("/posts", h.DeletePost)

		// Comments
		api.GET("/comments", h.GetComments)
		api.POST("/comments", h.CreateComment)
		api.DELETE("/comments", h.DeleteComment)

		// Feed
		api.GET("/feed", h.GetFeed)

		// Profiles
		api.GET("/users/:clerkUserId", h.GetUser)

		// Image upload (protected)
		api.POST("/images", authService.Middleware(), h.UploadImage)
	}

	// Server configuration
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("👗 Fitcheck backend starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
