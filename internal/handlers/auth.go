// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/orbitcart/orbitcart-backend/internal/apperrors"
	"github.com/orbitcart/orbitcart-backend/internal/services"
	"github.com/orbitcart/orbitcart-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "User registered successfully. Please verify your email.", user)
}

// POST /auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req services.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.authService.VerifyOTP(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "User verified successfully", gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"isVerified": user.IsVerified,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	tokens, err := h.authService.Login(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	utils.SuccessResponse(c, "Logged in successfully", tokens)
}

// POST /auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req services.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	tokens, err := h.authService.GoogleLogin(c.Request.Context(), &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	utils.SuccessResponse(c, "Logged in successfully", tokens)
}

// POST /auth/refresh-token
//
// The refresh token comes from the httpOnly cookie set at login; a JSON body
// works as a fallback for clients that cannot send cookies.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie("refreshToken")
	if err != nil || token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
			utils.RespondError(c, apperrors.Unauthorized("You are not authorized"))
			return
		}
		token = body.RefreshToken
	}

	tokens, err := h.authService.RefreshToken(token)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Access token refreshed successfully", tokens)
}

// POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.RespondError(c, apperrors.Unauthorized("You are not authorized"))
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.authService.ChangePassword(email, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Password changed successfully", nil)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	// 7 days, httpOnly; Secure is left to the proxy in front.
	c.SetCookie("refreshToken", refreshToken, 7*24*3600, "/", "", false, true)
}
