package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/productivite/productivite-server/internal/domain"
	domainerrors "github.com/productivite/productivite-server/internal/errors"
	"github.com/productivite/productivite-server/internal/id"
	"github.com/productivite/productivite-server/internal/store"
	"github.com/productivite/productivite-server/internal/validation"
)

// ReviewService handles tool reviews: one per (tool, user), posting
// again updates the existing review in place.
type ReviewService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// UpsertReviewRequest contains a review post.
type UpsertReviewRequest struct {
	ToolID  string `json:"tool_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title   string `json:"title,omitempty" validate:"omitempty,max=100"`
	Content string `json:"content,omitempty" validate:"omitempty,min=10,max=5000"`
}

// Upsert creates or replaces the caller's review of a tool.
func (s *ReviewService) Upsert(ctx context.Context, userID string, req UpsertReviewRequest) (*domain.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	reviewID, err := id.Generate("review")
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	review := &domain.Review{
		ToolID:  req.ToolID,
		UserID:  userID,
		Rating:  req.Rating,
		Title:   req.Title,
		Content: req.Content,
	}
	review.ID = reviewID
	review.InitTimestamps()

	saved, err := s.store.UpsertReview(ctx, review)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tool not found")
		}
		return nil, fmt.Errorf("upsert review: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Review posted",
			"review_id", saved.ID,
			"tool_id", req.ToolID,
			"rating", req.Rating,
		)
	}

	return saved, nil
}

// ListByTool returns a tool's reviews, newest first.
func (s *ReviewService) ListByTool(ctx context.Context, toolID string) ([]*domain.Review, error) {
	reviews, err := s.store.ListReviewsByTool(ctx, toolID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Delete removes a review. Only the author or an admin may delete.
func (s *ReviewService) Delete(ctx context.Context, reviewID string, actor *domain.User) error {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("review not found")
		}
		return fmt.Errorf("get review: %w", err)
	}

	if review.UserID != actor.ID && !actor.IsAdmin() {
		return domainerrors.Forbidden("you may only delete your own reviews")
	}

	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Review deleted", "review_id", reviewID, "by", actor.ID)
	}

	return nil
}
