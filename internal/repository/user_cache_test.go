package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/cake-service/internal/domain"
)

type finderStub struct {
	users map[string]*domain.User
	calls int
}

func (f *finderStub) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	f.calls++
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCachedUserLookup_DisabledPassesThrough(t *testing.T) {
	alice := &domain.User{ID: 1, Username: "alice"}
	source := &finderStub{users: map[string]*domain.User{"alice": alice}}

	lookup := NewCachedUserLookup(source, nil, time.Minute, nil)

	user, err := lookup.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Same(t, alice, user)
	assert.Equal(t, 1, source.calls)
}

func TestCachedUserLookup_FallsBackWhenRedisUnavailable(t *testing.T) {
	alice := &domain.User{ID: 1, Username: "alice"}
	source := &finderStub{users: map[string]*domain.User{"alice": alice}}

	lookup := NewCachedUserLookup(source, unreachableRedis(t), time.Minute, nil)

	user, err := lookup.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, alice, user)
	assert.Equal(t, 1, source.calls)
}

func TestCachedUserLookup_AbsentUserPropagates(t *testing.T) {
	source := &finderStub{users: map[string]*domain.User{}}

	lookup := NewCachedUserLookup(source, unreachableRedis(t), time.Minute, nil)

	user, err := lookup.FindByUsername(context.Background(), "ghost")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserCacheKey(t *testing.T) {
	assert.Equal(t, "user:username:alice", userCacheKey("alice"))
}

func liveRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCachedUserLookup_ServesHitsUntilExpiry(t *testing.T) {
	const ttl = time.Minute
	mr, client := liveRedis(t)
	source := &finderStub{users: map[string]*domain.User{"alice": {ID: 1, Username: "alice"}}}
	lookup := NewCachedUserLookup(source, client, ttl, nil)
	ctx := context.Background()

	user, err := lookup.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, 1, source.calls)
	assert.True(t, mr.Exists("user:username:alice"))
	assert.Equal(t, ttl, mr.TTL("user:username:alice"))

	delete(source.users, "alice")

	user, err = lookup.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, 1, source.calls)

	mr.FastForward(ttl)

	user, err = lookup.FindByUsername(ctx, "alice")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Equal(t, 2, source.calls)
	assert.False(t, mr.Exists("user:username:alice"))
}

func TestCachedUserLookup_AbsentUserIsNotCached(t *testing.T) {
	mr, client := liveRedis(t)
	source := &finderStub{users: map[string]*domain.User{}}
	lookup := NewCachedUserLookup(source, client, time.Minute, nil)

	_, err := lookup.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.False(t, mr.Exists("user:username:ghost"))

	source.users["ghost"] = &domain.User{ID: 7, Username: "ghost"}
	user, err := lookup.FindByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, 2, source.calls)
}

func TestCachedUserLookup_CorruptEntryFallsBack(t *testing.T) {
	mr, client := liveRedis(t)
	require.NoError(t, mr.Set("user:username:alice", "{not json"))
	source := &finderStub{users: map[string]*domain.User{"alice": {ID: 1, Username: "alice"}}}
	lookup := NewCachedUserLookup(source, client, time.Minute, nil)

	user, err := lookup.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, 1, source.calls)

	raw, err := mr.Get("user:username:alice")
	require.NoError(t, err)
	assert.Contains(t, raw, `"username":"alice"`)
}

func TestCachedUserLookup_ZeroTTLDisablesCache(t *testing.T) {
	mr, client := liveRedis(t)
	source := &finderStub{users: map[string]*domain.User{"alice": {ID: 1, Username: "alice"}}}
	lookup := NewCachedUserLookup(source, client, 0, nil)

	for i := 0; i < 2; i++ {
		_, err := lookup.FindByUsername(context.Background(), "alice")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, source.calls)
	assert.False(t, mr.Exists("user:username:alice"))
}
