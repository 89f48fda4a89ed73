package handler

import (
	"net/http"
	"os"
	"time"

	"dufaa.com/communitybackend/internal/middleware"
	"dufaa.com/communitybackend/internal/service"
	"dufaa.com/communitybackend/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service service.AuthService
	secure  bool
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
		secure:  os.Getenv("APP_ENV") == "production",
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "تم إرسال رمز التحقق إلى بريدك الإلكتروني"})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req service.VerifyInput
	if !bindJSON(c, &req) {
		return
	}

	auth, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.setSessionCookie(c, auth.AccessToken, auth.ExpiresAt)
	c.JSON(http.StatusCreated, auth)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.setSessionCookie(c, auth.AccessToken, auth.ExpiresAt)
	c.JSON(http.StatusOK, auth)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "تم تسجيل الخروج"})
}

func (h *AuthHandler) Forgot(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.Forgot(c.Request.Context(), req.Email); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "إذا كان البريد مسجلًا فسيصلك رابط إعادة التعيين"})
}

func (h *AuthHandler) Reset(c *gin.Context) {
	var req service.ResetInput
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.Reset(c.Request.Context(), req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم تغيير كلمة المرور بنجاح"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.secure, true)
}
