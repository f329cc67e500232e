package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/scout-profile/internal/profile"
)

// Runs against a real server when SCOUT_TEST_REDIS_URL is set, for example
// redis://localhost:6379/15.
func redisStore(t *testing.T) *RedisStore {
	t.Helper()

	url := os.Getenv("SCOUT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SCOUT_TEST_REDIS_URL is not set")
	}
	s, err := OpenRedis(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRedisKey(t *testing.T) {
	id := uuid.MustParse("6f1f7c2e-8f0a-4a55-9d8c-3b0d7f1e2a10")
	assert.Equal(t, "scout:profile:6f1f7c2e-8f0a-4a55-9d8c-3b0d7f1e2a10", redisKey(id))
}

func TestRedisStoreVersioning(t *testing.T) {
	ctx := context.Background()
	s := redisStore(t)
	clubID := uuid.New()
	t.Cleanup(func() { s.client.Del(context.Background(), redisKey(clubID)) })

	_, err := s.Load(ctx, clubID)
	require.ErrorIs(t, err, ErrNotFound)

	created, err := Create(ctx, s, clubID)
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)

	p := profile.Default()
	p.Identity.League = "Serie B"
	_, err = s.Save(ctx, clubID, p, 1)
	require.NoError(t, err)

	_, err = s.Save(ctx, clubID, p, 1)
	require.ErrorIs(t, err, ErrConflict)

	loaded, err := s.Load(ctx, clubID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Version)
	assert.Equal(t, "Serie B", loaded.Profile.Identity.League)
}

func TestRedisStoreEditorSerializesWrites(t *testing.T) {
	s := redisStore(t)
	clubID := uuid.New()
	t.Cleanup(func() { s.client.Del(context.Background(), redisKey(clubID)) })

	assertConcurrentEditsKept(t, s, clubID)
}
