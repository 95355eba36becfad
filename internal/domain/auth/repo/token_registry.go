package repo

import (
	"context"
	"time"
)

// TokenRegistry tracks the set of refresh tokens (by JTI) that are currently
// exchangeable for a new token pair. A refresh token is usable iff its JTI is
// present here AND the signed token itself still verifies.
type TokenRegistry interface {
	// Record inserts jti, expiring it at exp.
	Record(ctx context.Context, jti string, exp time.Time) error

	// IsValid reports membership.
	IsValid(ctx context.Context, jti string) (bool, error)

	// Rotate atomically replaces oldJTI with newJTI. When oldJTI is absent
	// (already rotated or revoked) it returns errors.ErrTokenRevoked and
	// inserts nothing: of two concurrent rotations of the same token,
	// exactly one wins.
	Rotate(ctx context.Context, oldJTI, newJTI string, exp time.Time) error

	// Revoke removes jti. Removing an absent jti is a no-op.
	Revoke(ctx context.Context, jti string) error
}
