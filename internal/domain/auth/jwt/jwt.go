package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drivelane/carmarket/internal/domain/auth/model"
)

// Claims embed the full identity so that refresh can mint a new pair without
// a database read.
type Claims struct {
	jwt.RegisteredClaims
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
	UserID   int64      `json:"uid"`
}

func (c Claims) Identity() model.Identity {
	return model.Identity{
		ID:       c.UserID,
		Username: c.Username,
		Email:    c.Email,
		Role:     c.Role,
	}
}

// TokenCodec signs and verifies the two token classes. Access and refresh
// tokens are signed with distinct secrets; a token of one class must never
// verify as the other.
type TokenCodec interface {
	GenerateAccessToken(id model.Identity) (token string, exp time.Time, err error)
	GenerateRefreshToken(id model.Identity) (token string, exp time.Time, jti string, err error)
	ValidateAccessToken(token string) (Claims, error)
	ValidateRefreshToken(token string) (Claims, error)
}
