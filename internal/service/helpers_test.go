package service

import (
	"context"
	"encoding/hex"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/productivite/productivite-server/internal/auth"
	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/store"
	"github.com/productivite/productivite-server/internal/store/sqlite"
	"github.com/productivite/productivite-server/internal/validation"
)

// newTestStore opens a SQLite store on a temporary database.
func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newTestTokenService builds a token service with a throwaway key.
func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	key, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	ts, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)
	return ts
}

var testValidator = validation.New()

// seedCategory inserts a category and returns it.
func seedCategory(t *testing.T, s store.Store, id, name, slug string) *domain.Category {
	t.Helper()
	cat := &domain.Category{Name: name, Slug: slug}
	cat.ID = id
	cat.InitTimestamps()
	require.NoError(t, s.CreateCategory(context.Background(), cat))
	return cat
}

// seedUser inserts a user and returns it.
func seedUser(t *testing.T, s store.Store, id, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		Role:         role,
	}
	user.ID = id
	user.InitTimestamps()
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

// seedTool inserts a published tool and returns it.
func seedTool(t *testing.T, s store.Store, id, name, slug, categoryID string) *domain.Tool {
	t.Helper()
	tool := &domain.Tool{
		Name:       name,
		Slug:       slug,
		CategoryID: categoryID,
		Pricing:    domain.PricingFreemium,
		Status:     domain.ToolStatusPublished,
	}
	tool.ID = id
	tool.InitTimestamps()
	require.NoError(t, s.CreateTool(context.Background(), tool))
	return tool
}
