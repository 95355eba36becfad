package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
)

func TestMemoryTokenRegistry_RecordRotateRevoke(t *testing.T) {
	reg := NewMemoryTokenRegistry()
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	if err := reg.Record(ctx, "old", exp); err != nil {
		t.Fatal(err)
	}
	if ok, _ := reg.IsValid(ctx, "old"); !ok {
		t.Fatal("recorded token must be valid")
	}

	if err := reg.Rotate(ctx, "old", "new", exp); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if ok, _ := reg.IsValid(ctx, "old"); ok {
		t.Fatal("old must be invalid after rotate")
	}
	if ok, _ := reg.IsValid(ctx, "new"); !ok {
		t.Fatal("new must be valid after rotate")
	}

	if err := reg.Rotate(ctx, "old", "newer", exp); !customErrors.IsTokenRevoked(err) {
		t.Fatalf("rotating an absent token: want ErrTokenRevoked, got %v", err)
	}
	if ok, _ := reg.IsValid(ctx, "newer"); ok {
		t.Fatal("failed rotate must not insert")
	}

	if err := reg.Revoke(ctx, "new"); err != nil {
		t.Fatal(err)
	}
	if err := reg.Revoke(ctx, "new"); err != nil {
		t.Fatalf("revoke must be idempotent: %v", err)
	}
}

func TestMemoryTokenRegistry_ExpiredEntrySwept(t *testing.T) {
	reg := NewMemoryTokenRegistry()
	ctx := context.Background()

	if err := reg.Record(ctx, "stale", time.Now().Add(-time.Second)); err != nil {
		t.Fatal(err)
	}
	if ok, _ := reg.IsValid(ctx, "stale"); ok {
		t.Fatal("entry past its deadline must not be valid")
	}
	if err := reg.Rotate(ctx, "stale", "new", time.Now().Add(time.Hour)); !customErrors.IsTokenRevoked(err) {
		t.Fatalf("rotating an expired entry: want ErrTokenRevoked, got %v", err)
	}
}

func TestMemoryTokenRegistry_ConcurrentRotateSingleWinner(t *testing.T) {
	reg := NewMemoryTokenRegistry()
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	if err := reg.Record(ctx, "contested", exp); err != nil {
		t.Fatal(err)
	}

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = reg.Rotate(ctx, "contested", "winner", exp)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("want exactly one winner, got %d", wins)
	}
}
