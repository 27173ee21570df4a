package logger

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.uber.org/zap"
)

// MongoLogger logs MongoDB driver commands through zap
type MongoLogger struct {
	ZapLogger     *zap.Logger
	SlowThreshold time.Duration
	Verbose       bool
}

// NewMongoLoggerWithConfig creates a new MongoDB command logger.
// Successful commands are only logged at debug level; slow ones and failures always are.
func NewMongoLoggerWithConfig(zapLogger *zap.Logger, slowQuerySeconds float64, logLevel string) *MongoLogger {
	return &MongoLogger{
		ZapLogger:     zapLogger,
		SlowThreshold: time.Duration(slowQuerySeconds * float64(time.Second)),
		Verbose:       strings.EqualFold(logLevel, "debug"),
	}
}

// Monitor returns a driver command monitor bound to this logger
func (l *MongoLogger) Monitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: l.Succeeded,
		Failed:    l.Failed,
	}
}

// Succeeded implements the CommandMonitor succeeded hook
func (l *MongoLogger) Succeeded(ctx context.Context, evt *event.CommandSucceededEvent) {
	logger := WithContext(ctx, l.ZapLogger)

	fields := []zap.Field{
		zap.String("command", evt.CommandName),
		zap.Int64("driver_request_id", evt.RequestID),
		zap.String("connection_id", evt.ConnectionID),
		zap.Duration("elapsed", evt.Duration),
		zap.Float64("elapsed_ms", float64(evt.Duration.Nanoseconds())/1e6),
	}

	if l.SlowThreshold != 0 && evt.Duration > l.SlowThreshold {
		fields = append(fields, zap.Duration("threshold", l.SlowThreshold))
		logger.Warn("mongo slow command", fields...)
		return
	}

	if l.Verbose {
		logger.Debug("mongo command", fields...)
	}
}

// Failed implements the CommandMonitor failed hook
func (l *MongoLogger) Failed(ctx context.Context, evt *event.CommandFailedEvent) {
	WithContext(ctx, l.ZapLogger).Error("mongo command error",
		zap.String("command", evt.CommandName),
		zap.Int64("driver_request_id", evt.RequestID),
		zap.String("connection_id", evt.ConnectionID),
		zap.Duration("elapsed", evt.Duration),
		zap.String("failure", evt.Failure),
	)
}
