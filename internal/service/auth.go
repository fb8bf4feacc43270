package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/types"
)

// AuthService issues and verifies stateless HS256 tokens
type AuthService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// GenerateToken signs {user_id, email, iat, exp} for user
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	issuedAt := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.tokenTTL)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature and expiry and checks the claim shape.
// Every failure is reported as ErrUnauthenticated.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrUnauthenticated
	}

	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.jwtSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if claims.UserID == 0 || claims.Email == "" {
		return nil, fmt.Errorf("%w: token is missing identity claims", ErrUnauthenticated)
	}
	return claims, nil
}
