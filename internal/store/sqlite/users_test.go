package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser("user-1", "ada@example.com")
	u.Name = "Ada"
	u.Role = domain.RoleAdmin

	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("Email: got %q, want %q", got.Email, u.Email)
	}
	if got.Name != "Ada" {
		t.Errorf("Name: got %q", got.Name)
	}
	if got.Role != domain.RoleAdmin {
		t.Errorf("Role: got %q", got.Role)
	}
	if !got.LastLoginAt.IsZero() {
		t.Errorf("expected zero LastLoginAt, got %v", got.LastLoginAt)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "ada@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Same email, different case: still a duplicate.
	err := s.CreateUser(ctx, makeTestUser("user-2", "Ada@Example.com"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "ada@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "ADA@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("ID: got %q", got.ID)
	}

	if _, err := s.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTouchUserLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "ada@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	at := time.Now()
	if err := s.TouchUserLogin(ctx, "user-1", at); err != nil {
		t.Fatalf("TouchUserLogin: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.LastLoginAt.IsZero() {
		t.Error("expected LastLoginAt to be set")
	}

	if err := s.TouchUserLogin(ctx, "user-missing", at); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUser_CascadesAndCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	toolID, userID := seedToolFixture(t, s)

	if _, err := s.ToggleUpvote(ctx, toolID, userID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := s.DeleteUser(ctx, userID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	// Ledger rows cascade with the user.
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM upvotes`).Scan(&n); err != nil {
		t.Fatalf("count upvotes: %v", err)
	}
	if n != 0 {
		t.Errorf("expected ledger rows to cascade, found %d", n)
	}

	// The counter now drifts; the recount repair brings it back.
	if _, err := s.RecountAllUpvotes(ctx); err != nil {
		t.Fatalf("RecountAllUpvotes: %v", err)
	}
	if got := storedCount(t, s, toolID); got != 0 {
		t.Errorf("counter after recount: got %d, want 0", got)
	}
}

func TestCountUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 users, got %d", count)
	}

	if err := s.CreateUser(ctx, makeTestUser("user-1", "ada@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	count, err = s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}
