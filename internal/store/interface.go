// Package store defines the persistence interface for the productivite server.
package store

import (
	"context"
	"time"

	"github.com/productivite/productivite-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	SetSearchIndexer(indexer SearchIndexer)
	SetBulkMode(enabled bool)
	IsBulkMode() bool

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	TouchUserLogin(ctx context.Context, id string, at time.Time) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int, error)

	// Auth Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	GetSessionsByUser(ctx context.Context, userID string) ([]*domain.Session, error)
	RevokeSession(ctx context.Context, id string, at time.Time) error
	RotateSessionToken(ctx context.Context, id, newTokenHash string, expiresAt time.Time) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Categories
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Tools
	CreateTool(ctx context.Context, tool *domain.Tool) error
	GetTool(ctx context.Context, id string) (*domain.Tool, error)
	GetToolBySlug(ctx context.Context, slug string) (*domain.Tool, error)
	ListTools(ctx context.Context, filter ToolFilter, params PaginationParams) (PaginatedResult[*domain.Tool], error)
	ListAllTools(ctx context.Context) ([]*domain.Tool, error)
	UpdateTool(ctx context.Context, tool *domain.Tool) error
	DeleteTool(ctx context.Context, id string) error

	// Upvotes
	ToggleUpvote(ctx context.Context, toolID, userID string) (*domain.VoteState, error)
	UpvoteStatus(ctx context.Context, toolID, userID string) (*domain.VoteState, error)
	UpvotedToolIDs(ctx context.Context, userID string) ([]string, error)
	RecountToolUpvotes(ctx context.Context, toolID string) (int, error)
	RecountAllUpvotes(ctx context.Context) (int, error)

	// Reviews
	UpsertReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	GetReviewByToolAndUser(ctx context.Context, toolID, userID string) (*domain.Review, error)
	ListReviewsByTool(ctx context.Context, toolID string) ([]*domain.Review, error)
	ToolRating(ctx context.Context, toolID string) (avg float64, count int, err error)
	DeleteReview(ctx context.Context, id string) error
}
