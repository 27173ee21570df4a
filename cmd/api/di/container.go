package di

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"usuarios-api/cmd/api/infrastructure"
	"usuarios-api/internal/adapter/db/mongodb"
	ginhandler "usuarios-api/internal/adapter/gin/handler"
	"usuarios-api/internal/adapter/gin/middleware"
	"usuarios-api/internal/adapter/gin/router"
	"usuarios-api/internal/config"
	"usuarios-api/internal/usecase/user"
	redisclient "usuarios-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Mongo       *mongodb.Manager
	RedisClient *redisclient.Client
	UserUC      user.Usecase
	RateLimiter *middleware.RateLimiter
	GinHandler  *ginhandler.UserHandler
	Router      *gin.Engine
}

// NewContainer creates and initializes all application dependencies.
// No database connection is opened here.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mgr := infrastructure.NewMongoManager(cfg, l)

	repo := mongodb.NewUserRepoMongo(mgr, l)
	userUC := user.New(repo, l)
	ginHandler := ginhandler.NewUserHandler(userUC, l)

	// Rate limiting is optional; an unreachable Redis leaves it off
	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		l.Warn("rate limiter disabled", zap.Error(err))
	}

	var rateLimiter *middleware.RateLimiter
	if rdb != nil {
		rateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	r := router.SetupRouter(ginHandler, rateLimiter, mgr, cfg.Logger.ServiceName, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		Mongo:       mgr,
		RedisClient: rdb,
		UserUC:      userUC,
		RateLimiter: rateLimiter,
		GinHandler:  ginHandler,
		Router:      r,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close(ctx context.Context) error {
	var err error

	if c.RedisClient != nil {
		if cerr := c.RedisClient.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close Redis: %w", cerr))
		}
	}

	if cerr := infrastructure.CloseMongoManager(ctx, c.Mongo); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to close database: %w", cerr))
	}

	return err
}
