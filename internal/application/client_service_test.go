package application

import (
	"context"
	"errors"
	"testing"
)

var clientIDs = []string{
	"3ebf2f6d-4c7a-4daf-6d4b-444444444444",
	"4fc03e5e-5d8b-4eba-5e5c-555555555555",
	"50d14d4f-6e9c-4fcb-4f6d-666666666666",
}

var adminPrincipal = Principal{ID: "admin-1", Name: "Root", Email: "root@example.com", Role: RoleAdmin}

func newClientFixture() (*ClientService, *clientStoreStub) {
	store := newClientStoreStub()
	svc := NewClientServiceWithLogger(store, plainHasher, fixedIDs(clientIDs...), nil)
	return svc, store
}

func TestClientService_ListClients(t *testing.T) {
	t.Parallel()

	t.Run("requests the fixed page size with the keyword", func(t *testing.T) {
		t.Parallel()

		svc, store := newClientFixture()
		if _, err := svc.ListClients(context.Background(), ListClientsParams{Principal: adminPrincipal, Page: 3, Keyword: " smith "}); err != nil {
			t.Fatalf("ListClients failed: %v", err)
		}

		if len(store.listCalls) != 1 {
			t.Fatalf("expected one store call, got %d", len(store.listCalls))
		}
		got := store.listCalls[0]
		want := ClientFilter{EmailKeyword: "smith", Limit: ClientsPerPage, Offset: 2 * ClientsPerPage}
		if got != want {
			t.Fatalf("unexpected filter: got %#v want %#v", got, want)
		}
	})

	t.Run("treats a missing page as the first", func(t *testing.T) {
		t.Parallel()

		svc, store := newClientFixture()
		if _, err := svc.ListClients(context.Background(), ListClientsParams{Principal: adminPrincipal}); err != nil {
			t.Fatalf("ListClients failed: %v", err)
		}
		if store.listCalls[0].Offset != 0 {
			t.Fatalf("expected offset 0 for the first page, got %d", store.listCalls[0].Offset)
		}
	})
}

func TestClientService_CreateClient(t *testing.T) {
	t.Parallel()

	t.Run("stores the account with a hashed password", func(t *testing.T) {
		t.Parallel()

		svc, store := newClientFixture()
		created, err := svc.CreateClient(context.Background(), CreateClientParams{
			Principal: adminPrincipal,
			Input:     ClientInput{Name: "Jane", Email: "Jane@Example.com", Password: "secret", Role: RoleAdmin},
		})
		if err != nil {
			t.Fatalf("CreateClient failed: %v", err)
		}
		if created.ID != clientIDs[0] || created.Email != "jane@example.com" || created.Role != RoleAdmin {
			t.Fatalf("unexpected created client: %#v", created)
		}
		if store.hashes[created.ID] != "hash:secret" {
			t.Fatalf("expected password to be hashed before storage")
		}
	})

	t.Run("defaults the role to User", func(t *testing.T) {
		t.Parallel()

		svc, _ := newClientFixture()
		created, err := svc.CreateClient(context.Background(), CreateClientParams{
			Principal: adminPrincipal,
			Input:     ClientInput{Name: "Jane", Email: "jane@example.com", Password: "secret"},
		})
		if err != nil {
			t.Fatalf("CreateClient failed: %v", err)
		}
		if created.Role != RoleUser {
			t.Fatalf("expected default role User, got %q", created.Role)
		}
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		t.Parallel()

		svc, _ := newClientFixture()
		_, err := svc.CreateClient(context.Background(), CreateClientParams{
			Principal: adminPrincipal,
			Input:     ClientInput{Name: "Jane", Email: "jane@example.com", Password: "secret", Role: "Owner"},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["role"]; !ok {
			t.Fatalf("expected field error for role, got %#v", vErr.FieldErrors)
		}
	})

	t.Run("requires a password on creation", func(t *testing.T) {
		t.Parallel()

		svc, _ := newClientFixture()
		_, err := svc.CreateClient(context.Background(), CreateClientParams{
			Principal: adminPrincipal,
			Input:     ClientInput{Name: "Jane", Email: "jane@example.com"},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["password"]; !ok {
			t.Fatalf("expected field error for password, got %#v", vErr.FieldErrors)
		}
	})
}

func TestClientService_UpdateClient(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (*ClientService, *clientStoreStub, Client) {
		t.Helper()
		svc, store := newClientFixture()
		created, err := svc.CreateClient(context.Background(), CreateClientParams{
			Principal: adminPrincipal,
			Input:     ClientInput{Name: "Jane", Email: "jane@example.com", Password: "secret"},
		})
		if err != nil {
			t.Fatalf("seed client failed: %v", err)
		}
		return svc, store, created
	}

	t.Run("keeps the stored hash when no password is supplied", func(t *testing.T) {
		t.Parallel()

		svc, store, created := seed(t)
		updated, err := svc.UpdateClient(context.Background(), UpdateClientParams{
			Principal: adminPrincipal,
			ClientID:  created.ID,
			Input:     ClientInput{Name: "Jane Doe", Email: "jane@example.com"},
		})
		if err != nil {
			t.Fatalf("UpdateClient failed: %v", err)
		}
		if updated.Name != "Jane Doe" {
			t.Fatalf("expected name to be updated, got %q", updated.Name)
		}
		if store.hashes[created.ID] != "hash:secret" {
			t.Fatalf("expected stored hash to be kept, got %q", store.hashes[created.ID])
		}
	})

	t.Run("rehashes when a new password is supplied", func(t *testing.T) {
		t.Parallel()

		svc, store, created := seed(t)
		if _, err := svc.UpdateClient(context.Background(), UpdateClientParams{
			Principal: adminPrincipal,
			ClientID:  created.ID,
			Input:     ClientInput{Name: "Jane", Email: "jane@example.com", Password: "rotated"},
		}); err != nil {
			t.Fatalf("UpdateClient failed: %v", err)
		}
		if store.hashes[created.ID] != "hash:rotated" {
			t.Fatalf("expected hash to be rotated, got %q", store.hashes[created.ID])
		}
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := seed(t)
		_, err := svc.UpdateClient(context.Background(), UpdateClientParams{
			Principal: adminPrincipal,
			ClientID:  "not-a-uuid",
			Input:     ClientInput{Name: "Jane", Email: "jane@example.com"},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("reports a missing account as not found", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := seed(t)
		_, err := svc.UpdateClient(context.Background(), UpdateClientParams{
			Principal: adminPrincipal,
			ClientID:  clientIDs[2],
			Input:     ClientInput{Name: "Jane", Email: "jane@example.com"},
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestClientService_DeleteClient(t *testing.T) {
	t.Parallel()

	t.Run("removes the account", func(t *testing.T) {
		t.Parallel()

		svc, store := newClientFixture()
		created, err := svc.CreateClient(context.Background(), CreateClientParams{
			Principal: adminPrincipal,
			Input:     ClientInput{Name: "Jane", Email: "jane@example.com", Password: "secret"},
		})
		if err != nil {
			t.Fatalf("seed client failed: %v", err)
		}

		if err := svc.DeleteClient(context.Background(), adminPrincipal, created.ID); err != nil {
			t.Fatalf("DeleteClient failed: %v", err)
		}
		if len(store.clients) != 0 {
			t.Fatalf("expected store to be empty after delete")
		}
	})

	t.Run("reports a missing account as not found", func(t *testing.T) {
		t.Parallel()

		svc, _ := newClientFixture()
		if err := svc.DeleteClient(context.Background(), adminPrincipal, clientIDs[2]); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestClientService_GetClient(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a stored account", func(t *testing.T) {
		t.Parallel()

		svc, _ := newClientFixture()
		created, err := svc.CreateClient(context.Background(), CreateClientParams{
			Principal: adminPrincipal,
			Input:     ClientInput{Name: "Jane", Email: "jane@example.com", Password: "secret"},
		})
		if err != nil {
			t.Fatalf("seed client failed: %v", err)
		}

		fetched, err := svc.GetClient(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetClient failed: %v", err)
		}
		if fetched != created {
			t.Fatalf("fetched client differs: got %#v want %#v", fetched, created)
		}
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		t.Parallel()

		svc, _ := newClientFixture()
		_, err := svc.GetClient(context.Background(), "42")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}
