package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupReviewRoutes(v1, c)
		setupRecommendationRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetMe)
		users.PUT("/me", c.UserHandler.UpdateMe)
		users.GET("/:id", c.UserHandler.GetUser)
	}

	adminUsers := v1.Group("/users")
	adminUsers.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		adminUsers.GET("", c.UserHandler.ListUsers)
		adminUsers.PUT("/:id", c.UserHandler.UpdateUser)
		adminUsers.DELETE("/:id", c.UserHandler.DeleteUser)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Public book routes
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.GET("/:id/summary", c.BookHandler.GetSummary)
		books.GET("/:id/reviews", c.ReviewHandler.ListBookReviews)
	}

	// Authenticated book routes
	authBooks := v1.Group("/books")
	authBooks.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authBooks.POST("", c.BookHandler.CreateBook)
		authBooks.PUT("/:id", c.BookHandler.UpdateBook)
		authBooks.DELETE("/:id", c.BookHandler.DeleteBook)
		authBooks.POST("/:id/reviews", c.ReviewHandler.CreateBookReview)

		// Mỗi request là một external completion call → rate limited
		authBooks.POST("/:id/generate-summary",
			middleware.RateLimit(rate.Every(time.Second), 5),
			c.BookHandler.GenerateSummary)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Public review routes
	reviews := v1.Group("/reviews")
	{
		reviews.GET("", c.ReviewHandler.ListReviews)
		reviews.GET("/:id", c.ReviewHandler.GetReview)
		reviews.GET("/books/:book_id/summary", c.ReviewHandler.BookReviewsSummary)
	}

	// Authenticated review routes
	authReviews := v1.Group("/reviews")
	authReviews.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authReviews.POST("", c.ReviewHandler.CreateReview)
		authReviews.PUT("/:id", c.ReviewHandler.UpdateReview)
		authReviews.DELETE("/:id", c.ReviewHandler.DeleteReview)
	}
}

// ========================================
// RECOMMENDATION ROUTES
// ========================================
func setupRecommendationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	recs := v1.Group("/recommendations")
	{
		recs.GET("/popular", c.RecHandler.Popular)
		recs.GET("/similar/:book_id", c.RecHandler.Similar)
	}

	authRecs := v1.Group("/recommendations")
	authRecs.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authRecs.GET("", c.RecHandler.Recommend)
		authRecs.POST("/generate-summary",
			middleware.RateLimit(rate.Every(time.Second), 5),
			c.RecHandler.GenerateSummary)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.GET("/cache/stats", c.RecHandler.CacheStats)
		admin.DELETE("/cache", c.RecHandler.ClearCache)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check cache (degraded cache không kéo status xuống - best-effort)
		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
