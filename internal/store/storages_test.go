package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/models"
)

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	dir := t.TempDir()
	storages, err := NewStorages(context.Background(), config.Storage{
		DB:       config.DB{DSN: "sqlite://" + filepath.Join(dir, "app.db")},
		Files:    config.Files{Driver: config.FilesDriverFS, BinaryDataDir: filepath.Join(dir, "media")},
		Sessions: config.Sessions{Driver: config.SessionsDriverDB},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages
}

func TestNewStorages_SQLiteRoundTrip(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	require.NoError(t, storages.Ping(ctx))

	now := time.Now().UTC().Truncate(time.Microsecond)
	alice, err := storages.UserRepository.CreateUser(ctx, models.User{
		Username: "alice", PasswordHash: "hash", DateJoined: now,
	})
	require.NoError(t, err)
	assert.NotZero(t, alice.UserID)

	_, err = storages.UserRepository.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "x", DateJoined: now})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	// usernames are case-sensitive
	_, err = storages.UserRepository.CreateUser(ctx, models.User{Username: "Alice", PasswordHash: "x", DateJoined: now})
	require.NoError(t, err)

	first, err := storages.DatasetRepository.CreateDataset(ctx, models.Dataset{
		Title: "first", OwnerID: alice.UserID, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	second, err := storages.DatasetRepository.CreateDataset(ctx, models.Dataset{
		Title: "second", File: "datasets/x.csv", OwnerID: alice.UserID,
		CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", second.OwnerUsername)
	assert.True(t, second.CreatedAt.Equal(now.Add(time.Second)))

	list, err := storages.DatasetRepository.ListDatasets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.False(t, list[1].HasFile())

	_, err = storages.DatasetRepository.FindDatasetByID(ctx, 12345)
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	_, err = storages.DatasetRepository.CreateDataset(ctx, models.Dataset{Title: "orphan", OwnerID: 999, CreatedAt: now, UpdatedAt: now})
	assert.Error(t, err, "foreign keys must be enforced")

	email := "alice@example.com"
	updated, err := storages.UserRepository.UpdateProfile(ctx, alice.UserID, models.ProfileUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, "alice", updated.Username)
}

func TestNewStorages_SQLiteSessions(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	user, err := storages.UserRepository.CreateUser(ctx, models.User{Username: "bob", PasswordHash: "hash", DateJoined: time.Now().UTC()})
	require.NoError(t, err)

	now := time.Now().UTC()
	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, storages.SessionStore.CreateSession(ctx, models.Session{
			ID: id, UserID: user.UserID, CreatedAt: now, ExpiresAt: now.Add(time.Hour),
		}))
	}

	session, err := storages.SessionStore.FindSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, session.UserID)
	assert.False(t, session.IsExpired(now))

	require.NoError(t, storages.SessionStore.DeleteUserSessions(ctx, user.UserID, "s2"))

	_, err = storages.SessionStore.FindSession(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = storages.SessionStore.FindSession(ctx, "s2")
	assert.NoError(t, err)

	require.NoError(t, storages.SessionStore.DeleteSession(ctx, "s2"))
	_, err = storages.SessionStore.FindSession(ctx, "s2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNewFileStorage_UnsupportedDriver(t *testing.T) {
	_, err := NewFileStorage(context.Background(), config.Files{Driver: "ftp"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewStorages_UnsupportedSessionsDriver(t *testing.T) {
	dir := t.TempDir()
	_, err := NewStorages(context.Background(), config.Storage{
		DB:       config.DB{DSN: "sqlite://" + filepath.Join(dir, "app.db")},
		Files:    config.Files{Driver: config.FilesDriverFS, BinaryDataDir: dir},
		Sessions: config.Sessions{Driver: "memcached"},
	}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewRedisSessionStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, client, err := NewRedisSessionStore(ctx, config.Sessions{RedisAddress: "127.0.0.1:1"}, logger.Nop())
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
	assert.Equal(t, "user_sessions:42", userSessionsKey(42))
}
