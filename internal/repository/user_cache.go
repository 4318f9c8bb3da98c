package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/cake-service/internal/domain"
)

const userCachePrefix = "user:username:"

// UserFinder is the read side of UserRepository.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CachedUserLookup is a read-through Redis cache in front of a UserFinder.
// Misses and absent users always go to the source.
type CachedUserLookup struct {
	source UserFinder
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserLookup wraps source. A nil client or non-positive ttl disables caching.
func NewCachedUserLookup(source UserFinder, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedUserLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedUserLookup{source: source, client: client, ttl: ttl, logger: logger}
}

// FindByUsername serves from cache when possible.
func (l *CachedUserLookup) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if !l.enabled() {
		return l.source.FindByUsername(ctx, username)
	}

	key := userCacheKey(username)
	raw, err := l.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var user domain.User
		if jsonErr := json.Unmarshal(raw, &user); jsonErr == nil {
			return &user, nil
		}
		l.logger.Warn("discarding corrupt cached user", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		l.logger.Warn("user cache read failed", zap.Error(err))
	}

	user, err := l.source.FindByUsername(ctx, username)
	if err != nil || user == nil {
		return user, err
	}

	if payload, err := json.Marshal(user); err == nil {
		if err := l.client.Set(ctx, key, payload, l.ttl).Err(); err != nil {
			l.logger.Warn("user cache write failed", zap.Error(err))
		}
	}
	return user, nil
}

func (l *CachedUserLookup) enabled() bool {
	return l.client != nil && l.ttl > 0
}

func userCacheKey(username string) string {
	return userCachePrefix + username
}
