package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"

	"github.com/drivelane/carmarket/internal/adapters/transport/http/dto"
	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
	"github.com/drivelane/carmarket/internal/domain/auth/jwt"
	"github.com/drivelane/carmarket/internal/domain/auth/model"
	"github.com/drivelane/carmarket/internal/domain/auth/repo"
	"github.com/drivelane/carmarket/internal/infra/config"
)

// Tuned so a single verification costs a noticeable fraction of a second on
// commodity hardware.
var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  3,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type authService struct {
	userRepo repo.UserRepo
	registry repo.TokenRegistry
	codec    jwt.TokenCodec
	cfg      *config.Config
	v        *validator.Validate
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.TokenPair, error)
	Login(context.Context, dto.LoginDTO) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

func New(
	ur repo.UserRepo,
	tr repo.TokenRegistry,
	codec jwt.TokenCodec,
	cfg *config.Config,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, registry: tr, codec: codec, cfg: cfg, v: v,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	role := model.Role(in.Role)
	if in.Role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return model.TokenPair{}, customErrors.NewInvalidArgument("unknown role")
	}

	passwordHash, err := argon2id.CreateHash(in.Password+a.cfg.PasswordPepper, argonParams)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	id, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.TokenPair{}, customErrors.ErrAlreadyExists
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}
	user.ID = id

	return a.issueTokens(ctx, user.Identity())
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.lookup(ctx, in.Login)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// same answer as a bad password so callers cannot probe which
		// field was wrong
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(in.Password+a.cfg.PasswordPepper, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, user.Identity())
}

// Refresh exchanges a live refresh token for a fresh pair, rotating the old
// token out. The identity is taken from the old token's claims, not from the
// database; role changes therefore apply at the next login.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := a.codec.ValidateRefreshToken(refreshToken)
	if err != nil {
		return model.TokenPair{}, err
	}

	ok, err := a.registry.IsValid(ctx, claims.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}
	if !ok {
		return model.TokenPair{}, customErrors.ErrTokenRevoked
	}

	identity := claims.Identity()

	at, atExp, err := a.codec.GenerateAccessToken(identity)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, jti, err := a.codec.GenerateRefreshToken(identity)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	// Rotate is the authority on concurrent refreshes: the IsValid check
	// above is only a fast path, the losing request fails here.
	if err := a.registry.Rotate(ctx, claims.ID, jti, rtExp); err != nil {
		if errors.Is(err, customErrors.ErrTokenRevoked) {
			return model.TokenPair{}, customErrors.ErrTokenRevoked
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "Rotate")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:     at,
		RefreshToken:    rt,
		AccessTTL:       atExp.Sub(now),
		RefreshTTL:      rtExp.Sub(now),
		RefreshTokenJTI: jti,
		Identity:        identity,
	}, nil
}

// Logout always succeeds: revoking an unknown, expired or malformed token is
// as logged-out as it gets.
func (a *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := a.codec.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil
	}
	_ = a.registry.Revoke(ctx, claims.ID)
	return nil
}

func (a *authService) lookup(ctx context.Context, login string) (model.User, error) {
	if strings.Contains(login, "@") {
		user, err := a.userRepo.GetUserByEmail(ctx, login)
		if !errors.Is(err, customErrors.ErrNotFound) {
			return user, err
		}
	}
	return a.userRepo.GetUserByUsername(ctx, login)
}

func (a *authService) issueTokens(ctx context.Context, identity model.Identity) (model.TokenPair, error) {
	at, atExp, err := a.codec.GenerateAccessToken(identity)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, jti, err := a.codec.GenerateRefreshToken(identity)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}
	if err := a.registry.Record(ctx, jti, rtExp); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "RecordRefresh")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:     at,
		RefreshToken:    rt,
		AccessTTL:       atExp.Sub(now),
		RefreshTTL:      rtExp.Sub(now),
		RefreshTokenJTI: jti,
		Identity:        identity,
	}, nil
}
