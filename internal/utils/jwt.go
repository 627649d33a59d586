// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type JWTClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var (
	accessSecret  = []byte("change-me-access")
	refreshSecret = []byte("change-me-refresh")
)

func SetJWTSecrets(access, refresh string) {
	accessSecret = []byte(access)
	refreshSecret = []byte(refresh)
}

func GenerateAccessToken(userID uuid.UUID, name, email, role string, ttlHours int) (string, error) {
	return generateToken(userID, name, email, role, ttlHours, accessSecret)
}

func GenerateRefreshToken(userID uuid.UUID, name, email, role string, ttlHours int) (string, error) {
	return generateToken(userID, name, email, role, ttlHours, refreshSecret)
}

func generateToken(userID uuid.UUID, name, email, role string, ttlHours int, secret []byte) (string, error) {
	claims := JWTClaims{
		UserID: userID.String(),
		Name:   name,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(ttlHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "orbitcart",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	return validateToken(tokenString, accessSecret)
}

func ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return validateToken(tokenString, refreshSecret)
}

func validateToken(tokenString string, secret []byte) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
