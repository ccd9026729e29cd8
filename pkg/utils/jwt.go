package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleTourist    = "TOURIST"
	RoleResearcher = "RESEARCHER"
	RoleAdmin      = "ADMIN"
)

// ErrNoJWTSecret is returned for every token while JWT_SECRET is unset.
var ErrNoJWTSecret = errors.New("JWT_SECRET is not configured")

// Tokens are issued by the auth provider; this service only verifies them
// with the shared secret. There is no fallback key.
func jwtKey() ([]byte, error) {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		return nil, ErrNoJWTSecret
	}
	return []byte(s), nil
}

// JWTConfigured reports whether authenticated routes can accept tokens.
func JWTConfigured() bool {
	_, err := jwtKey()
	return err == nil
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken signs a token for userID. Used by tests and local tooling.
func CreateToken(userID string, role string, ttl time.Duration) (string, error) {
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	key, err := jwtKey()
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

func ValidateToken(tokenString string) (*Claims, error) {
	key, err := jwtKey()
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
