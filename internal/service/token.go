package service

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the signed session payload carried in the cookie or
// the Authorization header.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the stateless signed session token.
// There is no server-side session store; Verify is pure.
type TokenManager interface {
	Issue(user *model.User) (token string, expiresAt time.Time, err error)
	// Verify fails closed: any signature, format or expiry problem
	// returns an error, treated upstream as "no session".
	Verify(token string) (*SessionClaims, error)
}

type tokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager reads JWT_SECRET and SESSION_TTL_DAYS (default 7).
func NewTokenManager() TokenManager {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := 7 * 24 * time.Hour
	if days, err := strconv.Atoi(os.Getenv("SESSION_TTL_DAYS")); err == nil && days > 0 {
		ttl = time.Duration(days) * 24 * time.Hour
	}

	return &tokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *tokenManager) Issue(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	claims := SessionClaims{
		Email: user.Email,
		Name:  user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, expiresAt, nil
}

func (m *tokenManager) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired session token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("invalid session claims")
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("invalid session subject")
	}

	return claims, nil
}
