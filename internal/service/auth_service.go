package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"strconv"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/pkg/apperror"
	"dufaa.com/communitybackend/pkg/mailer"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email,max=100"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
	CollegeID   string `json:"college_id" binding:"required,len=12,numeric"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
}

type VerifyInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetInput struct {
	Token       string `json:"token" binding:"required,uuid"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        *model.User `json:"user"`
}

type AuthService interface {
	// Register stores a pending signup with a mailed 6-digit code; a
	// repeat request while a code is still valid is rate limited.
	Register(ctx context.Context, input RegisterInput) error
	// Verify consumes the code, creates exactly one user and opens a
	// session. The verification row is deleted on first use.
	Verify(ctx context.Context, input VerifyInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	// Forgot issues a single-use reset token; it never reveals whether
	// the email exists.
	Forgot(ctx context.Context, email string) error
	// Reset consumes the token and updates the password atomically.
	Reset(ctx context.Context, input ResetInput) error
}

type authService struct {
	users         repository.UserRepository
	verifications repository.VerificationRepository
	mail          mailer.Mailer
	tokens        TokenManager
	rdb           *redis.Client
	codeTTL       time.Duration
	resetTTL      time.Duration
	resetBaseURL  string
}

func NewAuthService(
	users repository.UserRepository,
	verifications repository.VerificationRepository,
	mail mailer.Mailer,
	tokens TokenManager,
	rdb *redis.Client,
) AuthService {
	codeTTL := 10 * time.Minute
	if minutes, err := strconv.Atoi(os.Getenv("VERIFICATION_CODE_TTL_MINUTES")); err == nil && minutes > 0 {
		codeTTL = time.Duration(minutes) * time.Minute
	}

	resetTTL := 30 * time.Minute
	if minutes, err := strconv.Atoi(os.Getenv("RESET_TOKEN_TTL_MINUTES")); err == nil && minutes > 0 {
		resetTTL = time.Duration(minutes) * time.Minute
	}

	resetBaseURL := os.Getenv("RESET_BASE_URL")
	if resetBaseURL == "" {
		resetBaseURL = "https://dufaa.com/reset-password"
	}

	return &authService{
		users:         users,
		verifications: verifications,
		mail:          mail,
		tokens:        tokens,
		rdb:           rdb,
		codeTTL:       codeTTL,
		resetTTL:      resetTTL,
		resetBaseURL:  resetBaseURL,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) error {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return apperror.New(http.StatusConflict, "هذا البريد مسجل بالفعل", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.users.FindByCollegeID(ctx, input.CollegeID); err == nil {
		return apperror.New(http.StatusConflict, "هذا الرقم الجامعي مسجل بالفعل", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	allowed, err := AcquireRateLimit(ctx, s.rdb, input.Email, ActionVerificationCode, s.codeTTL/2)
	if err != nil {
		return err
	}
	if !allowed {
		return apperror.New(http.StatusTooManyRequests, "تم إرسال رمز تحقق مؤخرًا، انتظر قبل طلب رمز جديد", apperror.ErrRateLimitExceeded)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	verification := &model.EmailVerification{
		Email:        input.Email,
		CollegeID:    input.CollegeID,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hashedPassword),
		Code:         code,
		ExpiresAt:    time.Now().Add(s.codeTTL),
	}

	if err := s.verifications.UpsertVerification(ctx, verification); err != nil {
		return err
	}

	if err := s.mail.SendVerificationCode(input.Email, input.DisplayName, code); err != nil {
		// Surface the failure so the user can retry; drop the rate-limit
		// lock so the retry is not rejected.
		if relErr := ReleaseRateLimit(ctx, s.rdb, input.Email, ActionVerificationCode); relErr != nil {
			log.Printf("failed to release rate limit for %s: %v", input.Email, relErr)
		}
		return apperror.New(http.StatusInternalServerError, "تعذر إرسال رمز التحقق", err)
	}

	return nil
}

func (s *authService) Verify(ctx context.Context, input VerifyInput) (*AuthResponse, error) {
	verification, err := s.verifications.FindVerification(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusBadRequest, "رمز التحقق غير صالح أو منتهي", apperror.ErrInvalidInput)
		}
		return nil, err
	}

	if verification.Code != input.Code || time.Now().After(verification.ExpiresAt) {
		return nil, apperror.New(http.StatusBadRequest, "رمز التحقق غير صالح أو منتهي", apperror.ErrInvalidInput)
	}

	user := &model.User{
		Email:        verification.Email,
		CollegeID:    verification.CollegeID,
		DisplayName:  verification.DisplayName,
		PasswordHash: verification.PasswordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Single use: the row goes away with the first successful confirmation.
	if err := s.verifications.DeleteVerification(ctx, input.Email); err != nil {
		log.Printf("failed to delete verification for %s: %v", input.Email, err)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("بيانات الدخول غير صحيحة")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.Unauthorized("بيانات الدخول غير صحيحة")
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Forgot(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Existence is not disclosed.
			return nil
		}
		return err
	}

	allowed, err := AcquireRateLimit(ctx, s.rdb, email, ActionPasswordReset, s.resetTTL/2)
	if err != nil {
		return err
	}
	if !allowed {
		return apperror.New(http.StatusTooManyRequests, "تم إرسال رابط إعادة التعيين مؤخرًا", apperror.ErrRateLimitExceeded)
	}

	reset := &model.PasswordReset{
		Token:     uuid.New(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.resetTTL),
	}

	if err := s.verifications.CreateReset(ctx, reset); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s?token=%s", s.resetBaseURL, reset.Token)
	if err := s.mail.SendPasswordReset(user.Email, user.DisplayName, resetLink); err != nil {
		return apperror.New(http.StatusInternalServerError, "تعذر إرسال رابط إعادة التعيين", err)
	}

	return nil
}

func (s *authService) Reset(ctx context.Context, input ResetInput) error {
	token, err := uuid.Parse(input.Token)
	if err != nil {
		return apperror.New(http.StatusBadRequest, "رمز إعادة التعيين غير صالح", apperror.ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.users.ResetPassword(ctx, token, string(hashedPassword)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusBadRequest, "رمز إعادة التعيين غير صالح أو منتهي", apperror.ErrInvalidInput)
		}
		return err
	}

	return nil
}

func (s *authService) buildAuthResponse(user *model.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
