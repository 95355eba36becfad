package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"

	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
)

func newRegistry(t *testing.T) *RedisTokenRegistry {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewRedisTokenRegistry(client)
}

func TestRedisTokenRegistry_RecordAndIsValid(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	exp := time.Now().Add(10 * time.Minute)
	if err := reg.Record(ctx, "jti1", exp); err != nil {
		t.Fatalf("Record: %v", err)
	}

	ok, err := reg.IsValid(ctx, "jti1")
	if err != nil {
		t.Fatalf("IsValid err: %v", err)
	}
	if !ok {
		t.Fatal("token should be valid right after Record")
	}
}

func TestRedisTokenRegistry_IsValid_Absent(t *testing.T) {
	reg := newRegistry(t)

	ok, err := reg.IsValid(context.Background(), "absent-jti")
	if err != nil {
		t.Fatalf("IsValid err: %v", err)
	}
	if ok {
		t.Fatal("absent key must not be valid")
	}
}

func TestRedisTokenRegistry_Rotate(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	if err := reg.Record(ctx, "old", exp); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := reg.Rotate(ctx, "old", "new", exp); err != nil {
		t.Fatalf("Rotate: %v", err)
	}

	if ok, _ := reg.IsValid(ctx, "old"); ok {
		t.Fatal("rotated-out token must not be valid")
	}
	if ok, _ := reg.IsValid(ctx, "new"); !ok {
		t.Fatal("rotated-in token must be valid")
	}
}

func TestRedisTokenRegistry_Rotate_AbsentOld(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	err := reg.Rotate(ctx, "never-recorded", "new", time.Now().Add(time.Hour))
	if !customErrors.IsTokenRevoked(err) {
		t.Fatalf("want ErrTokenRevoked, got %v", err)
	}
	if ok, _ := reg.IsValid(ctx, "new"); ok {
		t.Fatal("losing rotation must not insert the new token")
	}
}

func TestRedisTokenRegistry_Rotate_SingleWinner(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	if err := reg.Record(ctx, "contested", exp); err != nil {
		t.Fatal(err)
	}

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = reg.Rotate(ctx, "contested", "new", exp)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case customErrors.IsTokenRevoked(err):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("want exactly one winner, got %d", wins)
	}
}

func TestRedisTokenRegistry_Revoke_Idempotent(t *testing.T) {
	reg := newRegistry(t)
	ctx := context.Background()

	if err := reg.Record(ctx, "jti2", time.Now().Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := reg.Revoke(ctx, "jti2"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := reg.Revoke(ctx, "jti2"); err != nil {
		t.Fatalf("second Revoke must be a no-op: %v", err)
	}
	if ok, _ := reg.IsValid(ctx, "jti2"); ok {
		t.Fatal("revoked token must not be valid")
	}
}

func TestRedisTokenRegistry_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)
	reg := NewRedisTokenRegistry(redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	if err := reg.Record(ctx, "shortlived", time.Now().Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Minute)

	if ok, _ := reg.IsValid(ctx, "shortlived"); ok {
		t.Fatal("entry must expire with the token")
	}
}
