package util

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// RoleClaim is one role carried inside a token.
type RoleClaim struct {
	Role     string `json:"role"`
	ObjectID uint   `json:"objectId,omitempty"`
}

// Claims embeds the signed-in user so requests can be authorized without a user lookup.
type Claims struct {
	UserID uint        `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Roles  []RoleClaim `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken signs claims with HS256. A zero expiry issues a token without exp.
// Every token gets a fresh jti so two sign-ins in the same second never share a signature.
func GenerateToken(claims Claims, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if expiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(expiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies the signature and expiry of tokenString.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetTokenSignature returns the signature segment of a header.payload.signature token,
// or "" when token does not have that shape.
func GetTokenSignature(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) > 2 {
		return parts[len(parts)-1]
	}
	return ""
}
