package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"usuarios-api/internal/adapter/gin/handler"
	"usuarios-api/internal/adapter/gin/middleware"
	"usuarios-api/pkg/logger"
)

// HealthChecker reports whether the database connection is established
type HealthChecker interface {
	Connected() bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware.
// rateLimiter and health may be nil.
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	health HealthChecker,
	serviceName string,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestIDMiddleware())
	router.Use(middleware.Logger(log))
	if rateLimiter != nil {
		router.Use(rateLimiter.Handler())
	}

	// Health check endpoint. Never triggers a connection attempt.
	router.GET("/health", func(c *gin.Context) {
		db := "disconnected"
		if health != nil && health.Connected() {
			db = "connected"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  serviceName,
			"database": db,
		})
	})

	users := router.Group("/usuarios")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.PUT("/:cc", userHandler.UpdateUser)
		users.DELETE("/:cc", userHandler.DeleteUser)
	}

	return router
}
