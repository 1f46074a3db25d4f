package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager handles JWT token generation and validation
type JWTManager struct {
	secretKey     []byte
	defaultExpiry time.Duration
	loginExpiry   time.Duration
}

// NewJWTManager creates a new JWT manager. defaultExpiry is used when no
// explicit lifetime is requested; loginExpiry is the lifetime of tokens
// issued at login.
func NewJWTManager(secret string, defaultExpiry, loginExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secret),
		defaultExpiry: defaultExpiry,
		loginExpiry:   loginExpiry,
	}
}

// GenerateAccessToken generates a new access token with the default lifetime.
// The token carries only the user id as its subject.
func (m *JWTManager) GenerateAccessToken(userID uint) (string, error) {
	return m.generate(userID, m.defaultExpiry)
}

// GenerateLoginToken generates an access token with the login lifetime.
func (m *JWTManager) GenerateLoginToken(userID uint) (string, error) {
	return m.generate(userID, m.loginExpiry)
}

func (m *JWTManager) generate(userID uint, expiry time.Duration) (string, error) {
	claims := &jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Subject:   strconv.FormatUint(uint64(userID), 10),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateAccessToken validates an access token and returns the user id it
// was issued for.
func (m *JWTManager) ValidateAccessToken(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("invalid user ID in token")
	}

	return uint(userID), nil
}
