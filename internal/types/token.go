package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token. iat and exp come from
// the embedded registered claims.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// Identity is the caller resolved from a valid token
type Identity struct {
	UserID uint
	Email  string
}

func (c *TokenClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email}
}
