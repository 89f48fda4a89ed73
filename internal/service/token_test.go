package service

import (
	"testing"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenManager(t *testing.T, secret string) TokenManager {
	t.Helper()
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("SESSION_TTL_DAYS", "")
	return NewTokenManager()
}

func TestTokenRoundTrip(t *testing.T) {
	manager := testTokenManager(t, "unit-test-secret")

	user := &model.User{
		ID:          uuid.New(),
		Email:       "sara@dufaa.com",
		DisplayName: "سارة",
	}

	token, expiresAt, err := manager.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.DisplayName, claims.Name)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	manager := testTokenManager(t, "unit-test-secret")

	token, _, err := manager.Issue(&model.User{ID: uuid.New(), Email: "a@b.c"})
	require.NoError(t, err)

	_, err = manager.Verify(token + "x")
	assert.Error(t, err)

	_, err = manager.Verify("not-a-token")
	assert.Error(t, err)

	_, err = manager.Verify("")
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := testTokenManager(t, "secret-one")
	token, _, err := issuer.Issue(&model.User{ID: uuid.New()})
	require.NoError(t, err)

	verifier := testTokenManager(t, "secret-two")
	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	const secret = "unit-test-secret"
	manager := testTokenManager(t, secret)

	claims := SessionClaims{
		Email: "a@b.c",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = manager.Verify(expired)
	assert.Error(t, err)
}

func TestVerifyRejectsNonUUIDSubject(t *testing.T) {
	const secret = "unit-test-secret"
	manager := testTokenManager(t, secret)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.Error(t, err)
}
