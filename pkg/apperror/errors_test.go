package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrConflict, http.StatusConflict},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errors.New("anything else"), http.StatusInternalServerError},

		// Wrapped sentinels still map.
		{fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},

		// AppError wins over its wrapped sentinel.
		{New(http.StatusConflict, "مكرر", ErrInvalidInput), http.StatusConflict},
		{NotFound("غير موجود"), http.StatusNotFound},
		{Unauthorized("سجل الدخول"), http.StatusUnauthorized},
		{Forbidden("ممنوع"), http.StatusForbidden},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MapErrorToStatus(tc.err), "error: %v", tc.err)
	}
}

func TestMapErrorToCode(t *testing.T) {
	assert.Equal(t, "UNAUTHORIZED", MapErrorToCode(ErrUnauthorized))
	assert.Equal(t, "FORBIDDEN", MapErrorToCode(ErrForbidden))
	assert.Equal(t, "NOT_FOUND", MapErrorToCode(ErrNotFound))
	assert.Equal(t, "BAD_REQUEST", MapErrorToCode(ErrInvalidInput))
	assert.Equal(t, "CONFLICT", MapErrorToCode(ErrConflict))
	assert.Equal(t, "RATE_LIMITED", MapErrorToCode(ErrRateLimitExceeded))
	assert.Equal(t, "INTERNAL", MapErrorToCode(errors.New("boom")))
}

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	inner := errors.New("pq: duplicate key")
	err := New(http.StatusConflict, "هذا البريد مسجل بالفعل", inner)

	// The user sees the Arabic message, the log sees the wrapped cause.
	assert.Equal(t, "هذا البريد مسجل بالفعل", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := &AppError{Err: inner}
	assert.Equal(t, inner.Error(), bare.Error())
}
