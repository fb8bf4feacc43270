package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/types"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func TestAuthService_RoundTrip(t *testing.T) {
	auth := NewAuthService(testSecret, time.Hour)
	token, err := auth.GenerateToken(&models.User{ID: 7, Email: "u@example.com"})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "u@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.Equal(t, types.Identity{UserID: 7, Email: "u@example.com"}, claims.Identity())
}

func TestAuthService_Expired(t *testing.T) {
	auth := NewAuthService(testSecret, time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	auth.now = func() time.Time { return issued }
	token, err := auth.GenerateToken(&models.User{ID: 1, Email: "u@example.com"})
	require.NoError(t, err)

	auth.now = time.Now
	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_Rejects(t *testing.T) {
	auth := NewAuthService(testSecret, time.Hour)
	sign := func(method jwt.SigningMethod, key interface{}, claims *types.TokenClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func(id uint, email string) *types.TokenClaims {
		return &types.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			UserID:           id,
			Email:            email,
		}
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other-secret"), valid(1, "u@example.com"))},
		{"other hmac alg", sign(jwt.SigningMethodHS512, []byte(testSecret), valid(1, "u@example.com"))},
		{"none alg", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid(1, "u@example.com"))},
		{"no expiry", sign(jwt.SigningMethodHS256, []byte(testSecret), &types.TokenClaims{UserID: 1, Email: "u@example.com"})},
		{"no user id", sign(jwt.SigningMethodHS256, []byte(testSecret), valid(0, "u@example.com"))},
		{"no email", sign(jwt.SigningMethodHS256, []byte(testSecret), valid(1, ""))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}
