package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/productivite/productivite-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// makeTestUser creates a domain.User with sensible defaults for testing.
func makeTestUser(id, email string) *domain.User {
	now := time.Now()
	return &domain.User{
		Timestamps: domain.Timestamps{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		Role:         domain.RoleUser,
	}
}

// makeTestCategory creates a domain.Category with sensible defaults for testing.
func makeTestCategory(id, name, slug string) *domain.Category {
	now := time.Now()
	return &domain.Category{
		Timestamps: domain.Timestamps{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: name,
		Slug: slug,
	}
}

// makeTestTool creates a published domain.Tool with sensible defaults for testing.
func makeTestTool(id, name, slug, categoryID string) *domain.Tool {
	now := time.Now()
	return &domain.Tool{
		Timestamps: domain.Timestamps{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:       name,
		Slug:       slug,
		CategoryID: categoryID,
		Pricing:    domain.PricingFreemium,
		Status:     domain.ToolStatusPublished,
	}
}

// seedToolFixture inserts a category, tool, and user for vote/review tests.
func seedToolFixture(t *testing.T, s *Store) (toolID, userID string) {
	t.Helper()
	ctx := context.Background()

	if err := s.CreateCategory(ctx, makeTestCategory("cat-1", "Productivity", "productivity")); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := s.CreateTool(ctx, makeTestTool("tool-1", "Notion", "notion", "cat-1")); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}
	if err := s.CreateUser(ctx, makeTestUser("user-1", "voter@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return "tool-1", "user-1"
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{
		"users", "sessions", "categories", "tools", "upvotes", "reviews",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_PragmasOnEveryConnection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Pin as many connections as the pool allows and verify each one got
	// the DSN pragmas. A pragma applied with a bare Exec would only reach
	// one of them.
	conns := make([]*sql.Conn, 0, 4)
	defer func() {
		for _, conn := range conns {
			conn.Close()
		}
	}()
	for range 4 {
		conn, err := s.db.Conn(ctx)
		if err != nil {
			t.Fatalf("acquire conn: %v", err)
		}
		conns = append(conns, conn)
	}

	for i, conn := range conns {
		var fk int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
			t.Fatalf("conn %d: query foreign_keys: %v", i, err)
		}
		if fk != 1 {
			t.Errorf("conn %d: foreign_keys: got %d, want 1", i, fk)
		}

		var busyTimeout int
		if err := conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
			t.Fatalf("conn %d: query busy_timeout: %v", i, err)
		}
		if busyTimeout != 5000 {
			t.Errorf("conn %d: busy_timeout: got %d, want 5000", i, busyTimeout)
		}
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s1, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	// Re-opening runs the schema again; it must not fail.
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s2.Close()
}

func TestBulkMode(t *testing.T) {
	s := newTestStore(t)

	if s.IsBulkMode() {
		t.Error("expected bulk mode off by default")
	}
	s.SetBulkMode(true)
	if !s.IsBulkMode() {
		t.Error("expected bulk mode on after SetBulkMode(true)")
	}
	s.SetBulkMode(false)
	if s.IsBulkMode() {
		t.Error("expected bulk mode off after SetBulkMode(false)")
	}
}
