package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	apperrors "usuarios-api/pkg/errors"
)

// Config holds the settings the Manager needs to reach the database.
type Config struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	Monitor        *event.CommandMonitor
}

// DialFunc opens a client and confirms the deployment is reachable.
type DialFunc func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)

// Manager owns the single MongoDB client shared by every request.
// The client is created lazily on the first EnsureConnected call and then reused;
// once connected the manager never drops back to disconnected until Close.
// A closed Manager refuses to connect again.
type Manager struct {
	cfg   Config
	log   *zap.Logger
	dial  DialFunc
	group singleflight.Group

	mu     sync.RWMutex
	client *mongo.Client
	closed bool
}

// NewManager creates a disconnected Manager. No network activity happens here.
func NewManager(cfg Config, log *zap.Logger) *Manager {
	return NewManagerWithDialer(cfg, log, dial)
}

// NewManagerWithDialer creates a Manager that opens clients with d.
func NewManagerWithDialer(cfg Config, log *zap.Logger, d DialFunc) *Manager {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}
	return &Manager{cfg: cfg, log: log, dial: d}
}

// EnsureConnected returns the shared client, connecting first if needed.
// Concurrent callers during a pending connect share that attempt. A failed attempt is
// reported to every waiting caller as a ConnectionError and is not retried here.
func (m *Manager) EnsureConnected(ctx context.Context) (*mongo.Client, error) {
	client, closed := m.state()
	if client != nil {
		return client, nil
	}
	if closed {
		return nil, errManagerClosed()
	}

	result, err, shared := m.group.Do("connect", func() (any, error) {
		// Another flight may have finished between the fast-path check and here
		if client, closed := m.state(); client != nil {
			return client, nil
		} else if closed {
			return nil, errManagerClosed()
		}

		connectCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.ConnectTimeout)
		defer cancel()

		start := time.Now()
		client, err := m.dial(connectCtx, m.clientOptions())
		if err != nil {
			m.log.Error("failed to connect to MongoDB",
				zap.Duration("elapsed", time.Since(start)),
				zap.Duration("timeout", m.cfg.ConnectTimeout),
				zap.Error(err),
			)
			return nil, apperrors.NewConnectionError("failed to connect to MongoDB", err)
		}

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			// Close ran while the dial was in flight
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, errManagerClosed()
		}
		m.client = client
		m.mu.Unlock()

		m.log.Info("MongoDB connected successfully",
			zap.String("database", m.cfg.Database),
			zap.Duration("elapsed", time.Since(start)),
		)
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		m.log.Debug("joined in-flight MongoDB connect")
	}

	return result.(*mongo.Client), nil
}

// Collection returns the users collection on the shared connection.
func (m *Manager) Collection(ctx context.Context) (*mongo.Collection, error) {
	client, err := m.EnsureConnected(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(m.cfg.Database).Collection(m.cfg.Collection), nil
}

// Connected reports whether the shared client has been established.
func (m *Manager) Connected() bool {
	return m.current() != nil
}

// Close disconnects the shared client. It is only called at process shutdown.
// A connect still in flight is discarded when it completes.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.closed = true
	m.mu.Unlock()

	if client == nil {
		return nil
	}

	m.log.Info("Closing MongoDB connection")
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	return nil
}

func (m *Manager) current() *mongo.Client {
	client, _ := m.state()
	return client
}

func (m *Manager) state() (*mongo.Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client, m.closed
}

func errManagerClosed() error {
	return apperrors.NewConnectionError("failed to connect to MongoDB", errors.New("connection manager closed"))
}

func (m *Manager) clientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(m.cfg.URI).
		SetConnectTimeout(m.cfg.ConnectTimeout).
		SetServerSelectionTimeout(m.cfg.ConnectTimeout)
	if m.cfg.Monitor != nil {
		opts.SetMonitor(m.cfg.Monitor)
	}
	return opts
}

// dial connects and pings so that an unreachable server fails within the connect timeout
// instead of on the first query.
func dial(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}
