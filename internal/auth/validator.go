package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/cake-service/internal/domain"
	apperrors "github.com/spec-kit/cake-service/pkg/util"
)

// ErrUnauthorized is the cause attached to every rejection made by the Validator.
var ErrUnauthorized = errors.New("unauthorized")

// TokenVerifier decodes a raw bearer token that has a valid signature and
// has not expired.
type TokenVerifier interface {
	ParseToken(raw string) (*Claims, error)
}

// UserLookup resolves a username. Absence is reported as pgx.ErrNoRows or a nil user.
type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Validator turns verified tokens into user identities.
type Validator struct {
	tokens TokenVerifier
	users  UserLookup
}

// NewValidator constructs a validator.
func NewValidator(tokens TokenVerifier, users UserLookup) *Validator {
	return &Validator{tokens: tokens, users: users}
}

// Validate resolves the user named by already verified claims.
func (v *Validator) Validate(ctx context.Context, claims *Claims) (*domain.User, error) {
	if claims == nil {
		return nil, apperrors.WrapUnauthorized("missing claims", ErrUnauthorized)
	}

	user, err := v.users.FindByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.WrapUnauthorized("user not found", ErrUnauthorized)
		}
		return nil, apperrors.MapError(err)
	}
	if user == nil {
		return nil, apperrors.WrapUnauthorized("user not found", ErrUnauthorized)
	}
	return user, nil
}

// Authenticate verifies a raw bearer token and resolves its user.
func (v *Validator) Authenticate(ctx context.Context, raw string) (*domain.User, error) {
	claims, err := v.tokens.ParseToken(raw)
	if err != nil {
		return nil, apperrors.WrapUnauthorized("invalid token", ErrUnauthorized)
	}
	return v.Validate(ctx, claims)
}
