//go:build integration

package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.uber.org/zap/zaptest"

	"usuarios-api/internal/domain/user"
	apperrors "usuarios-api/pkg/errors"
	"usuarios-api/pkg/logger"
)

// setupMongo starts a disposable MongoDB and returns a Manager pointed at it
func setupMongo(t *testing.T) *Manager {
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	m := NewManager(Config{
		URI:            uri,
		Database:       "usuarios_test",
		Collection:     "usuarios",
		ConnectTimeout: 5 * time.Second,
		Monitor:        logger.NewMongoLoggerWithConfig(log, 0.2, "debug").Monitor(),
	}, log)
	t.Cleanup(func() {
		_ = m.Close(context.Background())
	})
	return m
}

func TestUserRepoMongo_Lifecycle(t *testing.T) {
	m := setupMongo(t)
	repo := NewUserRepoMongo(m, zaptest.NewLogger(t))
	ctx := context.Background()

	ana := &user.User{Nombre: strPtr("Ana"), Cedula: numPtr(123), Email: strPtr("a@x.com"), Edad: numPtr(30)}
	require.NoError(t, repo.Create(ctx, ana))
	require.NoError(t, repo.Create(ctx, &user.User{Nombre: strPtr("Luis"), Cedula: numPtr(456)}))
	assert.True(t, m.Connected())

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	updated, err := repo.UpdateByCedula(ctx, 123, user.UserPatch{Edad: numPtr(31)})
	require.NoError(t, err)
	assert.Equal(t, ana.ID, updated.ID)
	assert.Equal(t, float64(31), *updated.Edad)
	assert.Equal(t, "Ana", *updated.Nombre)
	assert.Equal(t, "a@x.com", *updated.Email)

	_, err = repo.UpdateByCedula(ctx, 999, user.UserPatch{Edad: numPtr(1)})
	assert.True(t, apperrors.IsNotFound(err))

	deleted, err := repo.DeleteByCedula(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, float64(31), *deleted.Edad)

	_, err = repo.DeleteByCedula(ctx, 123)
	assert.True(t, apperrors.IsNotFound(err))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, float64(456), *users[0].Cedula)
}

func TestManager_UnreachableServerFailsFast(t *testing.T) {
	m := NewManager(Config{
		URI:            "mongodb://127.0.0.1:1/?directConnection=true",
		Database:       "usuarios_test",
		Collection:     "usuarios",
		ConnectTimeout: 500 * time.Millisecond,
	}, zaptest.NewLogger(t))

	start := time.Now()
	_, err := m.EnsureConnected(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsConnection(err))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, m.Connected())
}
