package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "upsertReview",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews",
		Summary:     "Post review",
		Description: "Creates the caller's review of a tool, or replaces it if one already exists",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpsertReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReview",
		Method:      http.MethodDelete,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Delete review",
		Description: "Deletes a review. Only the author or an admin may delete.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteReview)
}

// === DTOs ===

// UpsertReviewInput wraps a review post for Huma.
type UpsertReviewInput struct {
	Body service.UpsertReviewRequest
}

// ReviewOutput wraps a single review for Huma.
type ReviewOutput struct {
	Body *domain.Review
}

// DeleteReviewInput identifies the review to delete.
type DeleteReviewInput struct {
	ID string `path:"id" doc:"Review ID"`
}

// === Handlers ===

func (s *Server) handleUpsertReview(ctx context.Context, input *UpsertReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.Upsert(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: review}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *DeleteReviewInput) (*MessageOutput, error) {
	actor, err := s.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Review.Delete(ctx, input.ID, actor); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Review deleted"}}, nil
}
