package util

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_Passthrough(t *testing.T) {
	err := NewUnauthorized("nope")

	de := ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, "UNAUTHORIZED", de.Code)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
}

func TestToDomainError_FiberError(t *testing.T) {
	de := ToDomainError(fiber.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", de.Code)

	de = ToDomainError(fiber.NewError(http.StatusMethodNotAllowed, "nope"))
	assert.Equal(t, "METHOD_NOT_ALLOWED", de.Code)
	assert.Equal(t, "nope", de.Message)
}

func TestToDomainError_NoRows(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ToDomainError(sql.ErrNoRows).HTTPStatus)
	assert.Equal(t, http.StatusNotFound, ToDomainError(pgx.ErrNoRows).HTTPStatus)
}

func TestToDomainError_Internal(t *testing.T) {
	cause := errors.New("boom")

	de := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.ErrorIs(t, de, cause)
	assert.Nil(t, ToDomainError(nil))
}

func TestWrapUnauthorized(t *testing.T) {
	cause := errors.New("missing")

	err := WrapUnauthorized("user not found", cause)
	assert.True(t, IsUnauthorized(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsUnauthorized(NewInternalError(cause)))
}
