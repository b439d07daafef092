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

// ToolService handles the tool directory: public listings, user
// submissions, and the admin lifecycle (publish/unpublish/edit/delete).
type ToolService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewToolService creates a new tool service.
func NewToolService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ToolService {
	return &ToolService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// ListToolsRequest narrows and orders the public tool listing.
type ListToolsRequest struct {
	Category string `json:"category,omitempty" validate:"omitempty,slug"`
	Pricing  string `json:"pricing,omitempty" validate:"omitempty,oneof=free freemium paid enterprise"`
	Platform string `json:"platform,omitempty" validate:"omitempty,oneof=web ios android mac windows linux"`
	Sort     string `json:"sort,omitempty" validate:"omitempty,oneof=upvotes newest name"`
	Search   string `json:"search,omitempty" validate:"omitempty,max=100"`
	Page     int    `json:"page,omitempty" validate:"omitempty,gte=1"`
	PerPage  int    `json:"per_page,omitempty" validate:"omitempty,gte=1,lte=100"`
}

// SubmitToolRequest contains a user's tool submission.
type SubmitToolRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Tagline     string   `json:"tagline,omitempty" validate:"omitempty,max=100"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Website     string   `json:"website,omitempty" validate:"omitempty,url"`
	CategoryID  string   `json:"category_id" validate:"required"`
	Pricing     string   `json:"pricing" validate:"required,oneof=free freemium paid enterprise"`
	Platforms   []string `json:"platforms,omitempty" validate:"omitempty,dive,oneof=web ios android mac windows linux"`
	Features    []string `json:"features,omitempty" validate:"omitempty,dive,max=200"`
	Pros        []string `json:"pros,omitempty" validate:"omitempty,dive,max=200"`
	Cons        []string `json:"cons,omitempty" validate:"omitempty,dive,max=200"`
}

// UpdateToolRequest contains an admin edit. Nil fields are left unchanged.
type UpdateToolRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Tagline     *string  `json:"tagline,omitempty" validate:"omitempty,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Website     *string  `json:"website,omitempty" validate:"omitempty,url"`
	CategoryID  *string  `json:"category_id,omitempty"`
	Pricing     *string  `json:"pricing,omitempty" validate:"omitempty,oneof=free freemium paid enterprise"`
	Platforms   []string `json:"platforms,omitempty" validate:"omitempty,dive,oneof=web ios android mac windows linux"`
	Features    []string `json:"features,omitempty" validate:"omitempty,dive,max=200"`
	Pros        []string `json:"pros,omitempty" validate:"omitempty,dive,max=200"`
	Cons        []string `json:"cons,omitempty" validate:"omitempty,dive,max=200"`
}

// List returns published tools matching the filter, paginated.
func (s *ToolService) List(ctx context.Context, req ListToolsRequest) (store.PaginatedResult[*domain.Tool], error) {
	var zero store.PaginatedResult[*domain.Tool]

	if err := s.validator.Validate(req); err != nil {
		return zero, err
	}

	filter := store.ToolFilter{
		CategorySlug: req.Category,
		Pricing:      domain.Pricing(req.Pricing),
		Platform:     domain.Platform(req.Platform),
		Search:       req.Search,
		Sort:         store.ToolSort(req.Sort),
	}
	params := store.PaginationParams{Page: req.Page, PerPage: req.PerPage}

	result, err := s.store.ListTools(ctx, filter, params)
	if err != nil {
		return zero, fmt.Errorf("list tools: %w", err)
	}
	return result, nil
}

// GetBySlug returns a published tool with its review rating attached.
// Admins see drafts too; everyone else gets a 404 for unpublished tools.
func (s *ToolService) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*domain.Tool, float64, int, error) {
	tool, err := s.store.GetToolBySlug(ctx, slug)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, 0, 0, domainerrors.NotFound("tool not found")
		}
		return nil, 0, 0, fmt.Errorf("get tool: %w", err)
	}

	if !tool.IsPublished() && !includeDrafts {
		return nil, 0, 0, domainerrors.NotFound("tool not found")
	}

	avg, count, err := s.store.ToolRating(ctx, tool.ID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("tool rating: %w", err)
	}

	return tool, avg, count, nil
}

// Get returns a tool by ID regardless of status (admin surface).
func (s *ToolService) Get(ctx context.Context, toolID string) (*domain.Tool, error) {
	tool, err := s.store.GetTool(ctx, toolID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tool not found")
		}
		return nil, fmt.Errorf("get tool: %w", err)
	}
	return tool, nil
}

// ListAll returns every tool regardless of status (admin surface).
func (s *ToolService) ListAll(ctx context.Context) ([]*domain.Tool, error) {
	tools, err := s.store.ListAllTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all tools: %w", err)
	}
	return tools, nil
}

// Submit creates a draft tool from a user submission. The slug is derived
// from the name; collisions get a numeric suffix.
func (s *ToolService) Submit(ctx context.Context, userID string, req SubmitToolRequest) (*domain.Tool, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Verify the category exists up front for a clean error.
	if _, err := s.store.GetCategory(ctx, req.CategoryID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Validation("category_id does not reference a known category")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	toolID, err := id.Generate("tool")
	if err != nil {
		return nil, fmt.Errorf("generate tool ID: %w", err)
	}

	tool := &domain.Tool{
		Name:        req.Name,
		Slug:        util.Slugify(req.Name),
		Tagline:     req.Tagline,
		Description: req.Description,
		Website:     req.Website,
		CategoryID:  req.CategoryID,
		Pricing:     domain.Pricing(req.Pricing),
		Platforms:   toPlatforms(req.Platforms),
		Features:    req.Features,
		Pros:        req.Pros,
		Cons:        req.Cons,
		Status:      domain.ToolStatusDraft,
		SubmittedBy: userID,
	}
	tool.ID = toolID
	tool.InitTimestamps()

	if tool.Slug == "" {
		return nil, domainerrors.Validation("name must contain at least one letter or digit")
	}

	// Retry with numeric suffixes on slug collisions.
	baseSlug := tool.Slug
	for attempt := 2; ; attempt++ {
		err = s.store.CreateTool(ctx, tool)
		if err == nil {
			break
		}
		if !domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, fmt.Errorf("create tool: %w", err)
		}
		if attempt > 50 {
			return nil, domainerrors.Conflict("could not allocate a unique slug")
		}
		tool.Slug = fmt.Sprintf("%s-%d", baseSlug, attempt)
	}

	if s.logger != nil {
		s.logger.Info("Tool submitted",
			"tool_id", tool.ID,
			"slug", tool.Slug,
			"submitted_by", userID,
		)
	}

	return tool, nil
}

// Update applies an admin edit to a tool. The upvote counter is never
// touched here; only the vote toggle and the recount repair write it.
func (s *ToolService) Update(ctx context.Context, toolID string, req UpdateToolRequest) (*domain.Tool, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tool, err := s.Get(ctx, toolID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tool.Name = *req.Name
	}
	if req.Tagline != nil {
		tool.Tagline = *req.Tagline
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.Website != nil {
		tool.Website = *req.Website
	}
	if req.CategoryID != nil {
		if _, err := s.store.GetCategory(ctx, *req.CategoryID); err != nil {
			if domainerrors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.Validation("category_id does not reference a known category")
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
		tool.CategoryID = *req.CategoryID
	}
	if req.Pricing != nil {
		tool.Pricing = domain.Pricing(*req.Pricing)
	}
	if req.Platforms != nil {
		tool.Platforms = toPlatforms(req.Platforms)
	}
	if req.Features != nil {
		tool.Features = req.Features
	}
	if req.Pros != nil {
		tool.Pros = req.Pros
	}
	if req.Cons != nil {
		tool.Cons = req.Cons
	}
	tool.Touch()

	if err := s.store.UpdateTool(ctx, tool); err != nil {
		return nil, fmt.Errorf("update tool: %w", err)
	}

	return tool, nil
}

// Publish makes a tool visible in public listings and search.
func (s *ToolService) Publish(ctx context.Context, toolID string) (*domain.Tool, error) {
	return s.setStatus(ctx, toolID, domain.ToolStatusPublished)
}

// Unpublish reverts a tool to draft, removing it from listings and search.
func (s *ToolService) Unpublish(ctx context.Context, toolID string) (*domain.Tool, error) {
	return s.setStatus(ctx, toolID, domain.ToolStatusDraft)
}

func (s *ToolService) setStatus(ctx context.Context, toolID string, status domain.ToolStatus) (*domain.Tool, error) {
	tool, err := s.Get(ctx, toolID)
	if err != nil {
		return nil, err
	}

	if tool.Status == status {
		return tool, nil
	}

	tool.Status = status
	tool.Touch()
	if err := s.store.UpdateTool(ctx, tool); err != nil {
		return nil, fmt.Errorf("update tool status: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Tool status changed",
			"tool_id", toolID,
			"status", status,
		)
	}

	return tool, nil
}

// Delete removes a tool, its vote ledger, and its reviews.
func (s *ToolService) Delete(ctx context.Context, toolID string) error {
	if err := s.store.DeleteTool(ctx, toolID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("tool not found")
		}
		return fmt.Errorf("delete tool: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Tool deleted", "tool_id", toolID)
	}

	return nil
}

func toPlatforms(tags []string) []domain.Platform {
	if len(tags) == 0 {
		return nil
	}
	platforms := make([]domain.Platform, 0, len(tags))
	for _, tag := range tags {
		platforms = append(platforms, domain.Platform(tag))
	}
	return platforms
}
