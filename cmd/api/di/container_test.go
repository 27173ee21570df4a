package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"usuarios-api/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Mongo: config.MongoConfig{
			URI:                   "mongodb://127.0.0.1:1",
			Database:              "usuarios_db",
			Collection:            "usuarios",
			ConnectTimeoutSeconds: 1,
		},
		App: config.AppConfig{
			HTTPPort:               "8080",
			ShutdownTimeoutSeconds: 5,
		},
		Redis: config.RedisConfig{
			Host:     "127.0.0.1",
			Port:     "1",
			PoolSize: 1,
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 10,
			BurstCapacity:     20,
		},
		Logger: config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "usuarios-api",
		},
	}
}

func TestNewContainer_MissingURI(t *testing.T) {
	cfg := validConfig()
	cfg.Mongo.URI = ""

	c, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))

	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI is required")
}

func TestNewContainer_DoesNotConnect(t *testing.T) {
	c, err := NewContainer(context.Background(), validConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, c.Mongo.Connected())
	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.RateLimiter)
	assert.NotNil(t, c.Router)

	w := httptest.NewRecorder()
	c.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"disconnected"`)

	require.NoError(t, c.Close(context.Background()))
}

func TestNewContainer_RateLimiterWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := validConfig()
	cfg.RateLimit.Enabled = true
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = mr.Port()

	c, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NotNil(t, c.RedisClient)
	assert.NotNil(t, c.RateLimiter)
	require.NoError(t, c.Close(context.Background()))
}

func TestNewContainer_RateLimiterRedisUnreachable(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Enabled = true

	c, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.RateLimiter)
}
