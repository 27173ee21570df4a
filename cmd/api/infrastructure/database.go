package infrastructure

import (
	"context"
	"time"

	"go.uber.org/zap"

	"usuarios-api/internal/adapter/db/mongodb"
	"usuarios-api/internal/config"
	"usuarios-api/pkg/logger"
)

// NewMongoManager builds the connection manager from configuration. It does not connect.
func NewMongoManager(cfg *config.Config, l *zap.Logger) *mongodb.Manager {
	mongoLogger := logger.NewMongoLoggerWithConfig(l, cfg.Logger.SlowQuerySeconds, cfg.Logger.Level)

	m := mongodb.NewManager(mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		Collection:     cfg.Mongo.Collection,
		ConnectTimeout: cfg.Mongo.ConnectTimeout(),
		Monitor:        mongoLogger.Monitor(),
	}, l)

	l.Info("database manager configured",
		zap.String("database", cfg.Mongo.Database),
		zap.String("collection", cfg.Mongo.Collection),
		zap.Duration("connect_timeout", cfg.Mongo.ConnectTimeout()),
	)

	return m
}

// WarmUp attempts the first connection in the background so the first request
// usually finds the client ready. Failure is logged only; requests retry lazily.
func WarmUp(ctx context.Context, m *mongodb.Manager, l *zap.Logger) {
	go func() {
		start := time.Now()
		if _, err := m.EnsureConnected(ctx); err != nil {
			l.Warn("initial database connection failed, will retry on demand", zap.Error(err))
			return
		}
		l.Info("initial database connection established", zap.Duration("elapsed", time.Since(start)))
	}()
}

// CloseMongoManager disconnects the shared client, if any.
func CloseMongoManager(ctx context.Context, m *mongodb.Manager) error {
	if m == nil {
		return nil
	}
	return m.Close(ctx)
}
