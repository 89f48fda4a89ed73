package service

import (
	"context"
	"testing"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc           AuthService
	users         *fakeUserRepo
	verifications *fakeVerificationRepo
	mail          *fakeMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	t.Setenv("JWT_SECRET", "unit-test-secret")

	users := newFakeUserRepo()
	verifications := newFakeVerificationRepo()
	mail := &fakeMailer{}

	// A nil redis client disables rate limiting, which these tests do
	// not exercise.
	return &authFixture{
		svc:           NewAuthService(users, verifications, mail, NewTokenManager(), nil),
		users:         users,
		verifications: verifications,
		mail:          mail,
	}
}

var registerInput = RegisterInput{
	Email:       "sara@dufaa.com",
	DisplayName: "سارة",
	CollegeID:   "443200112233",
	Password:    "password123",
}

func TestRegisterStoresPendingSignupAndMailsCode(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.svc.Register(context.Background(), registerInput))

	// No user row yet, only the pending verification.
	assert.Empty(t, f.users.created)
	pending, ok := f.verifications.verifications[registerInput.Email]
	require.True(t, ok)
	assert.Len(t, pending.Code, 6)
	assert.True(t, pending.ExpiresAt.After(time.Now()))

	require.Len(t, f.mail.codes, 1)
	assert.Equal(t, pending.Code, f.mail.codes[0])

	// The stored hash verifies against the submitted password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(pending.PasswordHash), []byte(registerInput.Password)))
}

func TestRegisterRejectsDuplicateEmailAndCollegeID(t *testing.T) {
	f := newAuthFixture(t)
	f.users.add(&model.User{ID: uuid.New(), Email: registerInput.Email, CollegeID: "443200999999"})

	err := f.svc.Register(context.Background(), registerInput)
	require.Error(t, err)

	f2 := newAuthFixture(t)
	f2.users.add(&model.User{ID: uuid.New(), Email: "other@dufaa.com", CollegeID: registerInput.CollegeID})

	err = f2.svc.Register(context.Background(), registerInput)
	require.Error(t, err)
}

func TestVerifyCreatesUserAndConsumesCode(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.svc.Register(context.Background(), registerInput))
	code := f.verifications.verifications[registerInput.Email].Code

	resp, err := f.svc.Verify(context.Background(), VerifyInput{Email: registerInput.Email, Code: code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, registerInput.Email, resp.User.Email)
	require.Len(t, f.users.created, 1)

	// Single use: the same code is rejected the second time.
	_, err = f.svc.Verify(context.Background(), VerifyInput{Email: registerInput.Email, Code: code})
	require.Error(t, err)
	assert.Len(t, f.users.created, 1)
}

func TestVerifyRejectsWrongOrExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.svc.Register(context.Background(), registerInput))

	_, err := f.svc.Verify(context.Background(), VerifyInput{Email: registerInput.Email, Code: "000000"})
	require.Error(t, err)
	assert.Empty(t, f.users.created)

	f.verifications.verifications[registerInput.Email].ExpiresAt = time.Now().Add(-time.Minute)
	code := f.verifications.verifications[registerInput.Email].Code
	_, err = f.svc.Verify(context.Background(), VerifyInput{Email: registerInput.Email, Code: code})
	require.Error(t, err)
	assert.Empty(t, f.users.created)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	f.users.add(&model.User{
		ID:           uuid.New(),
		Email:        "sara@dufaa.com",
		CollegeID:    "443200112233",
		DisplayName:  "سارة",
		PasswordHash: string(hash),
	})

	resp, err := f.svc.Login(context.Background(), LoginInput{Email: "sara@dufaa.com", Password: "correct-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	_, err = f.svc.Login(context.Background(), LoginInput{Email: "sara@dufaa.com", Password: "wrong"})
	require.Error(t, err)

	// Unknown email fails with the same generic error, not a lookup error.
	_, err = f.svc.Login(context.Background(), LoginInput{Email: "nobody@dufaa.com", Password: "x"})
	require.Error(t, err)
}

func TestForgotDoesNotDiscloseExistence(t *testing.T) {
	f := newAuthFixture(t)

	// Unknown email: silent success, nothing mailed, no token stored.
	require.NoError(t, f.svc.Forgot(context.Background(), "nobody@dufaa.com"))
	assert.Empty(t, f.mail.resetLinks)
	assert.Empty(t, f.verifications.resets)
}

func TestForgotIssuesResetToken(t *testing.T) {
	f := newAuthFixture(t)
	f.users.add(&model.User{ID: uuid.New(), Email: "sara@dufaa.com", DisplayName: "سارة"})

	require.NoError(t, f.svc.Forgot(context.Background(), "sara@dufaa.com"))

	require.Len(t, f.verifications.resets, 1)
	reset := f.verifications.resets[0]
	assert.True(t, reset.ExpiresAt.After(time.Now()))

	require.Len(t, f.mail.resetLinks, 1)
	assert.Contains(t, f.mail.resetLinks[0], reset.Token.String())
}

func TestResetDelegatesTokenConsumption(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Reset(context.Background(), ResetInput{Token: uuid.NewString(), NewPassword: "new-password"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.users.resetCalls)

	// Malformed tokens never reach the store.
	err = f.svc.Reset(context.Background(), ResetInput{Token: "not-a-uuid", NewPassword: "new-password"})
	require.Error(t, err)
	assert.Equal(t, 1, f.users.resetCalls)
}
