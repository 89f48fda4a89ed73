package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubTokens struct {
	valid map[string]uuid.UUID
}

func (s *stubTokens) Issue(user *model.User) (string, time.Time, error) {
	token := "token-" + user.ID.String()
	s.valid[token] = user.ID
	return token, time.Now().Add(time.Hour), nil
}

func (s *stubTokens) Verify(token string) (*service.SessionClaims, error) {
	userID, ok := s.valid[token]
	if !ok {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return &service.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	}, nil
}

type stubUsers struct {
	repository.UserRepository

	users map[uuid.UUID]*model.User
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubRestrictions struct {
	repository.RestrictionRepository

	states map[uuid.UUID]repository.RestrictionState
}

func (s *stubRestrictions) ActiveState(_ context.Context, userID uuid.UUID) (repository.RestrictionState, error) {
	return s.states[userID], nil
}

type chainFixture struct {
	router *gin.Engine
	tokens *stubTokens
	users  *stubUsers
	states *stubRestrictions
}

func newChainFixture() *chainFixture {
	gin.SetMode(gin.TestMode)

	tokens := &stubTokens{valid: make(map[string]uuid.UUID)}
	users := &stubUsers{users: make(map[uuid.UUID]*model.User)}
	states := &stubRestrictions{states: make(map[uuid.UUID]repository.RestrictionState)}
	chain := NewAuthChain(tokens, users, states)

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	router := gin.New()
	router.GET("/public", chain.Public(), func(c *gin.Context) {
		auth := GetAuthContext(c)
		if auth == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": false})
	})
	router.GET("/protected", chain.Protected(), ok)
	router.GET("/restricted", chain.Protected(), chain.Restricted(), ok)
	router.GET("/unmuted", chain.Protected(), chain.Restricted(), chain.Unmuted(), ok)
	router.GET("/admin", chain.Protected(), chain.Restricted(), chain.Unmuted(), chain.Admin(), ok)

	return &chainFixture{router: router, tokens: tokens, users: users, states: states}
}

func (f *chainFixture) addUser(t *testing.T, isAdmin bool, state repository.RestrictionState) (uuid.UUID, string) {
	t.Helper()
	user := &model.User{ID: uuid.New(), DisplayName: "عضو", IsAdmin: isAdmin}
	f.users.users[user.ID] = user
	f.states.states[user.ID] = state

	token, _, err := f.tokens.Issue(user)
	require.NoError(t, err)
	return user.ID, token
}

func (f *chainFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *chainFixture) getWithCookie(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestGuardChainMatrix(t *testing.T) {
	f := newChainFixture()

	_, member := f.addUser(t, false, repository.RestrictionState{})
	_, banned := f.addUser(t, false, repository.RestrictionState{Banned: true})
	_, muted := f.addUser(t, false, repository.RestrictionState{Muted: true})
	_, admin := f.addUser(t, true, repository.RestrictionState{})
	_, bannedAdmin := f.addUser(t, true, repository.RestrictionState{Banned: true})

	cases := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"anonymous public", "/public", "", http.StatusOK},
		{"anonymous protected", "/protected", "", http.StatusUnauthorized},
		{"anonymous admin", "/admin", "", http.StatusUnauthorized},

		{"member protected", "/protected", member, http.StatusOK},
		{"member restricted", "/restricted", member, http.StatusOK},
		{"member unmuted", "/unmuted", member, http.StatusOK},
		{"member admin", "/admin", member, http.StatusForbidden},

		// A ban blocks everything above protected; the session itself
		// stays valid.
		{"banned protected", "/protected", banned, http.StatusOK},
		{"banned restricted", "/restricted", banned, http.StatusForbidden},
		{"banned unmuted", "/unmuted", banned, http.StatusForbidden},

		// A mute blocks only the unmuted level.
		{"muted restricted", "/restricted", muted, http.StatusOK},
		{"muted unmuted", "/unmuted", muted, http.StatusForbidden},

		{"admin admin", "/admin", admin, http.StatusOK},
		// Admin does not bypass the lower guards.
		{"banned admin", "/admin", bannedAdmin, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.get(tc.path, tc.token)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestInvalidTokenFailsClosedOnProtected(t *testing.T) {
	f := newChainFixture()

	rec := f.get("/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidTokenIsIgnoredOnPublic(t *testing.T) {
	f := newChainFixture()

	rec := f.get("/public", "garbage")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"anonymous":true`)
}

func TestDeletedUserSessionIsRejected(t *testing.T) {
	f := newChainFixture()

	userID, token := f.addUser(t, false, repository.RestrictionState{})
	delete(f.users.users, userID)

	rec := f.get("/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionCookieIsAccepted(t *testing.T) {
	f := newChainFixture()

	_, token := f.addUser(t, false, repository.RestrictionState{})
	rec := f.getWithCookie("/protected", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicAttachesSessionWhenPresent(t *testing.T) {
	f := newChainFixture()

	_, token := f.addUser(t, false, repository.RestrictionState{})
	rec := f.get("/public", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"anonymous":false`)
}
