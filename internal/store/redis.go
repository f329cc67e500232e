package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spigell/scout-profile/internal/profile"
)

const redisKeyPrefix = "scout:profile:"

// RedisStore keeps each profile document under its own key and guards
// updates with WATCH/MULTI.
type RedisStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// OpenRedis connects to the server described by a redis:// URL.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStore(client), nil
}

func redisKey(clubID uuid.UUID) string {
	return redisKeyPrefix + clubID.String()
}

func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) Load(ctx context.Context, clubID uuid.UUID) (*Record, error) {
	data, err := s.client.Get(ctx, redisKey(clubID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile of club %s: %w", clubID, err)
	}
	return decodeDocument(clubID, data)
}

func (s *RedisStore) Save(ctx context.Context, clubID uuid.UUID, p *profile.Profile, expectedVersion int) (*Record, error) {
	key := redisKey(clubID)
	next := &Record{
		ClubID:    clubID,
		Profile:   p.Clone(),
		Version:   expectedVersion + 1,
		UpdatedAt: s.now().UTC(),
	}
	data, err := encodeDocument(next)
	if err != nil {
		return nil, err
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := currentVersion(ctx, tx, clubID)
		if err != nil {
			return err
		}
		if current != expectedVersion {
			return ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return next, nil
	case errors.Is(err, ErrConflict), errors.Is(err, redis.TxFailedErr):
		return nil, ErrConflict
	default:
		return nil, fmt.Errorf("save profile of club %s: %w", clubID, err)
	}
}

func currentVersion(ctx context.Context, tx *redis.Tx, clubID uuid.UUID) (int, error) {
	data, err := tx.Get(ctx, redisKey(clubID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	rec, err := decodeDocument(clubID, data)
	var corrupt *CorruptError
	switch {
	case err == nil:
		return rec.Version, nil
	case errors.As(err, &corrupt):
		return corrupt.Version, nil
	default:
		return 0, err
	}
}
