package delivery

import (
	"net/http"
	"strings"
	"time"

	"medigate/domain"
	"medigate/middleware"
	"medigate/utils"

	"github.com/gin-gonic/gin"
)

const forgotPasswordMessage = "If your email is registered, you will receive an OTP"

type AuthHandler struct {
	authUC domain.AuthUseCase
}

func NewAuthHandler(r *gin.Engine, authUC domain.AuthUseCase, limiter *middleware.RateLimiter) {
	handler := &AuthHandler{authUC: authUC}

	// Ping Route (no rate limiting)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	public := r.Group("/auth")
	{
		public.POST("/register", limit(limiter, "register", 3, time.Hour), handler.Register)
		public.POST("/login", limit(limiter, "login", 10, 15*time.Minute), handler.Login)
		public.POST("/forgot-password", limit(limiter, "forgot_password", 3, time.Hour), handler.ForgotPassword)
		public.POST("/verify-otp", limit(limiter, "verify_otp", 5, 10*time.Minute), handler.VerifyOTP)
		public.POST("/reset-password", limit(limiter, "reset_password", 5, 10*time.Minute), handler.ResetPassword)
	}
}

func limit(limiter *middleware.RateLimiter, endpoint string, max int, window time.Duration) gin.HandlerFunc {
	return middleware.EndpointRateLimitMiddleware(limiter, middleware.RateLimiterConfig{
		RequestsPerWindow: max,
		WindowDuration:    window,
		KeyPrefix:         "ratelimit:auth",
	}, endpoint)
}

type RegisterRequest struct {
	FullName        string `json:"fullName" binding:"required,min=1,max=100"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phoneNumber" binding:"required,e164phone"`
	Password        string `json:"password" binding:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Role            string `json:"role" binding:"omitempty,oneof=USER MED ADMIN"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "Register", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  utils.TranslateValidationError(err),
		})
		return
	}

	phone, err := utils.NormalizePhone(strings.TrimSpace(req.PhoneNumber))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  []string{"Invalid phone number format"},
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		FullName:    strings.TrimSpace(req.FullName),
		Email:       email,
		PhoneNumber: phone,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
	})
	if err != nil {
		utils.PrintLogInfo(&email, 400, "Register", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": sanitizeError(err, "register"),
		})
		return
	}

	utils.PrintLogInfo(&email, 201, "Register", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"data":    user,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "Login", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  utils.TranslateValidationError(err),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	result, err := h.authUC.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		utils.PrintLogInfo(&email, 401, "Login", &err)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": sanitizeError(err, "login"),
		})
		return
	}

	utils.PrintLogInfo(&email, 200, "Login", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    result,
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "ForgotPassword", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  utils.TranslateValidationError(err),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	h.authUC.ForgotPassword(c.Request.Context(), email)

	// Identical response whether or not the account exists.
	utils.PrintLogInfo(&email, 200, "ForgotPassword", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": forgotPasswordMessage,
	})
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "VerifyOTP", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  utils.TranslateValidationError(err),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	resetToken, err := h.authUC.VerifyOTP(c.Request.Context(), email, req.OTP)
	if err != nil {
		utils.PrintLogInfo(&email, 400, "VerifyOTP", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": sanitizeError(err, "verifyOtp"),
		})
		return
	}

	utils.PrintLogInfo(&email, 200, "VerifyOTP", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP verified successfully",
		"data":    gin.H{"resetToken": resetToken},
	})
}

type ResetPasswordRequest struct {
	ResetToken      string `json:"resetToken" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "ResetPassword", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.ResetPassword(c.Request.Context(), req.ResetToken, req.NewPassword); err != nil {
		utils.PrintLogInfo(nil, 400, "ResetPassword", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": sanitizeError(err, "resetPassword"),
		})
		return
	}

	utils.PrintLogInfo(nil, 200, "ResetPassword", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successfully",
	})
}
