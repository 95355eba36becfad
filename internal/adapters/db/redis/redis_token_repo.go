package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
)

const keyPrefix = "rt:"

// rotate must be atomic: the DEL of the old JTI and the SET of the new one
// happen in one script, so of two concurrent refreshes of the same token
// exactly one observes the old entry and wins.
var rotateScript = redis.NewScript(`
if redis.call("DEL", KEYS[1]) == 0 then
  return 0
end
redis.call("SET", KEYS[2], "1", "PX", ARGV[1])
return 1
`)

// RedisTokenRegistry keeps one key per live refresh JTI, expiring with the
// token itself, so the registry never outgrows the set of unexpired tokens.
type RedisTokenRegistry struct {
	client *redis.Client
}

func NewRedisTokenRegistry(client *redis.Client) *RedisTokenRegistry {
	return &RedisTokenRegistry{client: client}
}

func (r *RedisTokenRegistry) Record(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, keyPrefix+jti, "1", safeTTL(exp)).Err()
}

func (r *RedisTokenRegistry) IsValid(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, customErrors.WrapInternal(err, "IsValid")
	}
	return n > 0, nil
}

func (r *RedisTokenRegistry) Rotate(ctx context.Context, oldJTI, newJTI string, exp time.Time) error {
	won, err := rotateScript.Run(ctx, r.client,
		[]string{keyPrefix + oldJTI, keyPrefix + newJTI},
		safeTTL(exp).Milliseconds(),
	).Int()
	if err != nil {
		return customErrors.WrapInternal(err, "Rotate")
	}
	if won == 0 {
		return customErrors.ErrTokenRevoked
	}
	return nil
}

func (r *RedisTokenRegistry) Revoke(ctx context.Context, jti string) error {
	return r.client.Del(ctx, keyPrefix+jti).Err()
}

func safeTTL(exp time.Time) time.Duration {
	ttl := time.Until(exp)
	if ttl <= 0 {
		// minimal TTL so the key still disappears
		return time.Second
	}
	return ttl
}
