package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func testClaims() Claims {
	return Claims{
		UserID: 42,
		Name:   "pizza diner",
		Email:  "d@jwt.com",
		Roles: []RoleClaim{
			{Role: "diner"},
			{Role: "franchisee", ObjectID: 3},
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testClaims(), testSecret, 15*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "pizza diner", claims.Name)
	assert.Equal(t, "d@jwt.com", claims.Email)
	assert.Equal(t, testClaims().Roles, claims.Roles)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.IssuedAt.Before(claims.ExpiresAt.Time))
}

func TestGenerateToken_NoExpiry(t *testing.T) {
	token, err := GenerateToken(testClaims(), testSecret, 0)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestGenerateToken_UniqueSignatures(t *testing.T) {
	first, err := GenerateToken(testClaims(), testSecret, time.Hour)
	require.NoError(t, err)
	second, err := GenerateToken(testClaims(), testSecret, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, GetTokenSignature(first), GetTokenSignature(second))
}

func TestValidateToken_Errors(t *testing.T) {
	valid, err := GenerateToken(testClaims(), testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{name: "Wrong secret", token: valid, secret: "wrong-secret", wantErr: ErrInvalidToken},
		{name: "Garbage", token: "invalid.token.format", secret: testSecret, wantErr: ErrInvalidToken},
		{name: "Empty", token: "", secret: testSecret, wantErr: ErrInvalidToken},
		{name: "Tampered signature", token: valid[:strings.LastIndex(valid, ".")+1] + "AAAA", secret: testSecret, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(testClaims(), testSecret, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	claims, err := ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestGetTokenSignature(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{token: "aaa.bbb.ccc", want: "ccc"},
		{token: "invalid", want: ""},
		{token: "aaa.bbb", want: ""},
		{token: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, GetTokenSignature(tt.token))
		})
	}
}
