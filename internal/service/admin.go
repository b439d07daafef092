package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/productivite/productivite-server/internal/domain"
	domainerrors "github.com/productivite/productivite-server/internal/errors"
	"github.com/productivite/productivite-server/internal/store"
)

// AdminService handles user administration: listing accounts and
// promoting users to the admin role.
type AdminService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(store store.Store, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:  store,
		logger: logger,
	}
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// PromoteUser grants a user the admin role.
func (s *AdminService) PromoteUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.IsAdmin() {
		return user, nil
	}

	user.Role = domain.RoleAdmin
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User promoted to admin", "user_id", userID)
	}

	return user, nil
}
