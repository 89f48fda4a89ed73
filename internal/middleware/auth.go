package middleware

import (
	"errors"
	"net/http"

	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionCookie is the name of the signed session cookie. The same token
// is accepted as a Bearer Authorization header.
const SessionCookie = "dufaa_session"

const authContextKey = "auth_context"

// AuthContext is the per-request authorization snapshot, built at most
// once per request (one user-row fetch plus one restriction query).
// Every guard level reads from it instead of re-querying.
type AuthContext struct {
	User   *model.User
	Banned bool
	Muted  bool
}

// AuthChain implements the linear guard chain
// public -> protected -> restricted -> unmuted -> admin. Each level is a
// strict superset of the checks below it; a handler is registered under
// the single highest level it needs.
type AuthChain struct {
	tokens       service.TokenManager
	users        repository.UserRepository
	restrictions repository.RestrictionRepository
}

func NewAuthChain(
	tokens service.TokenManager,
	users repository.UserRepository,
	restrictions repository.RestrictionRepository,
) *AuthChain {
	return &AuthChain{
		tokens:       tokens,
		users:        users,
		restrictions: restrictions,
	}
}

// GetAuthContext returns the snapshot attached by the chain, or nil on
// public routes with no session.
func GetAuthContext(c *gin.Context) *AuthContext {
	value, exists := c.Get(authContextKey)
	if !exists {
		return nil
	}
	auth, ok := value.(*AuthContext)
	if !ok {
		return nil
	}
	return auth
}

// CurrentUser returns the authenticated user; guards above public
// guarantee it is non-nil.
func CurrentUser(c *gin.Context) *model.User {
	if auth := GetAuthContext(c); auth != nil {
		return auth.User
	}
	return nil
}

// Public attaches the session when one is present and valid; any token
// problem is treated as "no session", never an error.
func (m *AuthChain) Public() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth, err := m.resolve(c); err == nil && auth != nil {
			c.Set(authContextKey, auth)
		}
		c.Next()
	}
}

// Protected requires a valid, non-expired session.
func (m *AuthChain) Protected() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, err := m.resolve(c)
		if err != nil || auth == nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "الرجاء تسجيل الدخول")
			return
		}
		c.Set(authContextKey, auth)
		c.Next()
	}
}

// Restricted additionally requires no currently-active ban.
func (m *AuthChain) Restricted() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := GetAuthContext(c)
		if auth == nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "الرجاء تسجيل الدخول")
			return
		}
		if auth.Banned {
			abort(c, http.StatusForbidden, "FORBIDDEN", "الحساب محظور")
			return
		}
		c.Next()
	}
}

// Unmuted additionally requires no currently-active mute.
func (m *AuthChain) Unmuted() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := GetAuthContext(c)
		if auth == nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "الرجاء تسجيل الدخول")
			return
		}
		if auth.Muted {
			abort(c, http.StatusForbidden, "FORBIDDEN", "أنت مكتوم مؤقتًا")
			return
		}
		c.Next()
	}
}

// Admin additionally requires the admin flag.
func (m *AuthChain) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := GetAuthContext(c)
		if auth == nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "الرجاء تسجيل الدخول")
			return
		}
		if !auth.User.IsAdmin {
			abort(c, http.StatusForbidden, "FORBIDDEN", "صلاحية مشرف مطلوبة")
			return
		}
		c.Next()
	}
}

// resolve verifies the session token and loads the user plus restriction
// state. It returns (nil, nil) when no token is supplied, and an error
// for any invalid token or missing user (fail closed).
func (m *AuthChain) resolve(c *gin.Context) (*AuthContext, error) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			tokenString = cookie
		}
	}
	if tokenString == "" {
		return nil, nil
	}

	claims, err := m.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, err
	}

	ctx := c.Request.Context()
	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("session user no longer exists")
		}
		return nil, err
	}

	state, err := m.restrictions.ActiveState(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AuthContext{
		User:   user,
		Banned: state.Banned,
		Muted:  state.Muted,
	}, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}
