package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/productivite/productivite-server/internal/domain"
	domainerrors "github.com/productivite/productivite-server/internal/errors"
	"github.com/productivite/productivite-server/internal/id"
	"github.com/productivite/productivite-server/internal/store"
	"github.com/productivite/productivite-server/internal/util"
	"github.com/productivite/productivite-server/internal/validation"
)

// CategoryService handles the browse taxonomy. Reads are public; writes
// are reserved for the admin surface.
type CategoryService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(store store.Store, validator *validation.Validator, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateCategoryRequest contains a new category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug,omitempty" validate:"omitempty,slug,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        string `json:"icon,omitempty" validate:"omitempty,max=50"`
	Color       string `json:"color,omitempty" validate:"omitempty,max=50"`
	SortOrder   int    `json:"sort_order,omitempty" validate:"omitempty,gte=0"`
}

// UpdateCategoryRequest contains an admin edit. Nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=50"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=50"`
	SortOrder   *int    `json:"sort_order,omitempty" validate:"omitempty,gte=0"`
}

// List returns all categories with their published tool counts, ordered
// for the categories page.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetBySlug returns one category.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	category, err := s.store.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// Create adds a new category. The slug defaults to the slugified name.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}
	if slug == "" {
		return nil, domainerrors.Validation("name must contain at least one letter or digit")
	}

	categoryID, err := id.Generate("cat")
	if err != nil {
		return nil, fmt.Errorf("generate category ID: %w", err)
	}

	category := &domain.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		SortOrder:   req.SortOrder,
	}
	category.ID = categoryID
	category.InitTimestamps()

	if err := s.store.CreateCategory(ctx, category); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("a category with this slug already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Category created", "category_id", categoryID, "slug", slug)
	}

	return category, nil
}

// Update applies an admin edit to a category. The slug is immutable once
// created so tool URLs stay stable.
func (s *CategoryService) Update(ctx context.Context, categoryID string, req UpdateCategoryRequest) (*domain.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	category.Touch()

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

// Delete removes a category. Fails if any tool still references it.
func (s *CategoryService) Delete(ctx context.Context, categoryID string) error {
	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		switch {
		case domainerrors.Is(err, store.ErrNotFound):
			return domainerrors.NotFound("category not found")
		case domainerrors.Is(err, store.ErrInvalidInput):
			return domainerrors.Conflict("category still has tools")
		}
		return fmt.Errorf("delete category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Category deleted", "category_id", categoryID)
	}

	return nil
}
