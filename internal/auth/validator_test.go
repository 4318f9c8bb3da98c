package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/cake-service/internal/domain"
	apperrors "github.com/spec-kit/cake-service/pkg/util"
)

type lookupStub struct {
	mu    sync.Mutex
	users map[string]*domain.User
	err   error
	calls []string
}

func (l *lookupStub) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, username)
	if l.err != nil {
		return nil, l.err
	}
	user, ok := l.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newLookup(users ...*domain.User) *lookupStub {
	m := make(map[string]*domain.User, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &lookupStub{users: m}
}

func TestValidator_Validate_ReturnsResolvedUser(t *testing.T) {
	alice := &domain.User{ID: 1, Username: "alice"}
	lookup := newLookup(alice)
	validator := NewValidator(NewTokenManager("secret", time.Hour), lookup)

	user, err := validator.Validate(context.Background(), &Claims{Username: "alice"})
	require.NoError(t, err)
	assert.Same(t, alice, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, []string{"alice"}, lookup.calls)
}

func TestValidator_Validate_UnknownUser(t *testing.T) {
	lookup := newLookup(&domain.User{ID: 1, Username: "alice"})
	validator := NewValidator(NewTokenManager("secret", time.Hour), lookup)

	user, err := validator.Validate(context.Background(), &Claims{Username: "ghost"})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
}

type nilLookup struct{}

func (nilLookup) FindByUsername(context.Context, string) (*domain.User, error) { return nil, nil }

func TestValidator_Validate_NilUserIsAbsent(t *testing.T) {
	validator := NewValidator(NewTokenManager("secret", time.Hour), nilLookup{})

	user, err := validator.Validate(context.Background(), &Claims{Username: "alice"})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestValidator_Validate_NilClaims(t *testing.T) {
	lookup := newLookup()
	validator := NewValidator(NewTokenManager("secret", time.Hour), lookup)

	_, err := validator.Validate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, lookup.calls)
}

func TestValidator_Validate_LookupFailureIsInternal(t *testing.T) {
	lookup := &lookupStub{err: errors.New("connection reset")}
	validator := NewValidator(NewTokenManager("secret", time.Hour), lookup)

	_, err := validator.Validate(context.Background(), &Claims{Username: "alice"})
	require.Error(t, err)
	assert.False(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, http.StatusInternalServerError, apperrors.ToDomainError(err).HTTPStatus)
}

func TestValidator_Authenticate(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	alice := &domain.User{ID: 1, Username: "alice"}
	validator := NewValidator(tokens, newLookup(alice))

	raw, _, err := tokens.GenerateToken("alice")
	require.NoError(t, err)

	user, err := validator.Authenticate(context.Background(), raw)
	require.NoError(t, err)
	assert.Same(t, alice, user)

	_, err = validator.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	other := NewTokenManager("other-secret", time.Hour)
	forged, _, err := other.GenerateToken("alice")
	require.NoError(t, err)
	_, err = validator.Authenticate(context.Background(), forged)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestValidator_ConcurrentUse(t *testing.T) {
	lookup := newLookup(&domain.User{ID: 1, Username: "alice"})
	validator := NewValidator(NewTokenManager("secret", time.Hour), lookup)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "alice"
			if i%2 == 1 {
				name = "ghost"
			}
			user, err := validator.Validate(context.Background(), &Claims{Username: name})
			if name == "alice" {
				assert.NoError(t, err)
				assert.Equal(t, "alice", user.Username)
			} else {
				assert.ErrorIs(t, err, ErrUnauthorized)
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, lookup.calls, 32)
}
