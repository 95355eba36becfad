package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
	jwt2 "github.com/drivelane/carmarket/internal/domain/auth/jwt"
	"github.com/drivelane/carmarket/internal/domain/auth/model"
	"github.com/drivelane/carmarket/internal/infra/config"
)

type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewCodec builds the dual-secret codec. Equal secrets are refused: a leak of
// one secret must not allow forging the other token class.
func NewCodec(cfg *config.Config) (*Codec, error) {
	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, customErrors.NewInvalidArgument("jwt secrets must be set")
	}
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		return nil, customErrors.NewInvalidArgument("access and refresh secrets must differ")
	}

	return &Codec{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		issuer:        cfg.JWTIssuer,
	}, nil
}

func (c *Codec) GenerateAccessToken(id model.Identity) (string, time.Time, error) {
	signed, exp, _, err := c.generate(id, c.accessSecret, c.accessTTL)
	return signed, exp, err
}

func (c *Codec) GenerateRefreshToken(id model.Identity) (string, time.Time, string, error) {
	return c.generate(id, c.refreshSecret, c.refreshTTL)
}

func (c *Codec) ValidateAccessToken(raw string) (jwt2.Claims, error) {
	return c.validate(raw, c.accessSecret)
}

func (c *Codec) ValidateRefreshToken(raw string) (jwt2.Claims, error) {
	return c.validate(raw, c.refreshSecret)
}

func (c *Codec) generate(id model.Identity, secret []byte, ttl time.Duration) (string, time.Time, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := jwt2.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.ID, 10),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
		Username: id.Username,
		Email:    id.Email,
		Role:     id.Role,
		UserID:   id.ID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

func (c *Codec) validate(raw string, secret []byte) (jwt2.Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt2.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithIssuedAt())

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return jwt2.Claims{}, customErrors.ErrTokenExpired
	case err != nil, token == nil, !token.Valid:
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt2.Claims)
	if !ok {
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}

	if c.issuer != "" && claims.Issuer != c.issuer {
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
