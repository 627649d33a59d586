// internal/services/auth_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"github.com/orbitcart/orbitcart-backend/internal/apperrors"
	"github.com/orbitcart/orbitcart-backend/internal/config"
	"github.com/orbitcart/orbitcart-backend/internal/models"
	"github.com/orbitcart/orbitcart-backend/internal/utils"
)

const otpTTL = 5 * time.Minute

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer *MailerService
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}

type RegisteredUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer *MailerService) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		mailer: mailer,
	}
}

// Register creates an unverified account and mails a one-time password.
func (s *AuthService) Register(req *RegisterRequest) (*RegisteredUser, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var existingUser models.User
	if err := s.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return nil, apperrors.Conflict("User already exists")
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}
	otpExpires := time.Now().Add(otpTTL)

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleUser
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		Status:       models.UserStatusActive,
		OTP:          &otp,
		OTPExpiresAt: &otpExpires,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.mailer.SendOTPEmail(user.Email, otp); err != nil {
		// Registration stands; the user can request a resend.
		logrus.WithError(err).WithField("email", user.Email).Error("Failed to send OTP email")
	}

	return &RegisteredUser{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		IsVerified: user.IsVerified,
	}, nil
}

// VerifyOTP marks the account verified and clears the stored OTP.
func (s *AuthService) VerifyOTP(req *VerifyOTPRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, apperrors.NotFound("User not found")
	}

	if err := checkOTP(&user, req.OTP, time.Now()); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"is_verified":    true,
		"otp":            nil,
		"otp_expires_at": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	user.IsVerified = true
	user.OTP = nil
	user.OTPExpiresAt = nil
	return &user, nil
}

// checkOTP applies the verification rules in order: already verified,
// expired, mismatch.
func checkOTP(user *models.User, code string, now time.Time) error {
	if user.IsVerified {
		return apperrors.Conflict("User is already verified")
	}
	if user.OTPExpired(now) {
		return apperrors.Unauthorized("Invalid or expired OTP")
	}
	if !user.OTPMatches(code) {
		return apperrors.Unauthorized("Invalid OTP")
	}
	return nil
}

func (s *AuthService) Login(req *LoginRequest) (*TokenPair, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var user models.User
	err := s.db.Where("email = ? AND status = ?", req.Email, models.UserStatusActive).
		First(&user).Error
	if err != nil {
		return nil, apperrors.NotFound("User not found")
	}

	if !user.IsVerified {
		return nil, apperrors.Unauthorized("User is not verified")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.Unauthorized("Incorrect password")
	}

	return s.issueTokens(&user)
}

// GoogleLogin verifies a Google ID token and signs the user in, creating the
// account on first login.
func (s *AuthService) GoogleLogin(ctx context.Context, req *GoogleLoginRequest) (*TokenPair, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("Token is required")
	}

	payload, err := idtoken.Validate(ctx, req.Token, s.cfg.Google.ClientID)
	if err != nil {
		logrus.WithError(err).Error("Google ID token verification failed")
		return nil, apperrors.Unauthorized("Invalid token")
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if email == "" {
		return nil, apperrors.Unauthorized("Invalid token")
	}

	var user models.User
	err = s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		// First Google sign-in: provision a verified account with an
		// unguessable placeholder password.
		password, genErr := utils.GenerateRandomString(32)
		if genErr != nil {
			return nil, fmt.Errorf("failed to generate password: %w", genErr)
		}

		user = models.User{
			Name:       name,
			Email:      email,
			Role:       models.UserRoleUser,
			Status:     models.UserStatusActive,
			IsVerified: true,
		}
		if picture != "" {
			user.Profile = &picture
		}
		if err := user.SetPassword(password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	return s.issueTokens(&user)
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (s *AuthService) RefreshToken(token string) (*TokenPair, error) {
	claims, err := utils.ValidateRefreshToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("You are not authorized")
	}

	var user models.User
	err = s.db.Where("email = ? AND status = ?", claims.Email, models.UserStatusActive).
		First(&user).Error
	if err != nil {
		return nil, apperrors.NotFound("User not found")
	}

	accessToken, err := utils.GenerateAccessToken(
		user.ID, user.Name, user.Email, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken}, nil
}

func (s *AuthService) ChangePassword(email string, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	var user models.User
	err := s.db.Where("email = ? AND status = ?", email, models.UserStatusActive).
		First(&user).Error
	if err != nil {
		return apperrors.NotFound("User not found")
	}

	if err := user.CheckPassword(req.OldPassword); err != nil {
		return apperrors.Unauthorized("Password doesn't match")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	updates := map[string]interface{}{
		"password_hash":        user.PasswordHash,
		"need_password_change": false,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := utils.GenerateAccessToken(
		user.ID, user.Name, user.Email, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(
		user.ID, user.Name, user.Email, string(user.Role), s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
