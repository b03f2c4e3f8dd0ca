package application

import (
	"testing"
	"time"
)

func TestTokenRevocations(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

	t.Run("unknown tokens are not revoked", func(t *testing.T) {
		t.Parallel()

		store := NewTokenRevocations(func() time.Time { return base })
		if store.IsRevoked("token") {
			t.Fatalf("expected unknown token to be clear")
		}
	})

	t.Run("revocation is immediately visible", func(t *testing.T) {
		t.Parallel()

		store := NewTokenRevocations(func() time.Time { return base })
		store.Revoke("token", base.Add(time.Hour))
		if !store.IsRevoked("token") {
			t.Fatalf("expected token to be revoked")
		}
		if store.IsRevoked("other") {
			t.Fatalf("expected unrelated token to stay clear")
		}
	})

	t.Run("entries lapse with the token expiry", func(t *testing.T) {
		t.Parallel()

		now := base
		store := NewTokenRevocations(func() time.Time { return now })
		store.Revoke("token", base.Add(time.Hour))

		now = base.Add(2 * time.Hour)
		if store.IsRevoked("token") {
			t.Fatalf("expected expired entry to lapse")
		}
		if store.Len() != 0 {
			t.Fatalf("expected lapsed entry to be swept, have %d", store.Len())
		}
	})

	t.Run("zero expiry pins the entry", func(t *testing.T) {
		t.Parallel()

		now := base
		store := NewTokenRevocations(func() time.Time { return now })
		store.Revoke("token", time.Time{})

		now = base.Add(100 * time.Hour)
		if !store.IsRevoked("token") {
			t.Fatalf("expected pinned entry to survive")
		}
	})

	t.Run("insert sweeps stale entries", func(t *testing.T) {
		t.Parallel()

		now := base
		store := NewTokenRevocations(func() time.Time { return now })
		store.Revoke("stale", base.Add(time.Minute))

		now = base.Add(time.Hour)
		store.Revoke("fresh", now.Add(time.Hour))
		if store.Len() != 1 {
			t.Fatalf("expected only the fresh entry, have %d", store.Len())
		}
	})
}
