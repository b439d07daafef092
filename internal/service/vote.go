package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/productivite/productivite-server/internal/domain"
	domainerrors "github.com/productivite/productivite-server/internal/errors"
	"github.com/productivite/productivite-server/internal/store"
	"github.com/productivite/productivite-server/internal/validation"
)

// VoteService handles the upvote toggle and vote-state reads. The store
// owns the transactional core; this layer maps store errors to the API
// taxonomy and keeps the search index nudge out of the handlers.
type VoteService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewVoteService creates a new vote service.
func NewVoteService(store store.Store, validator *validation.Validator, logger *slog.Logger) *VoteService {
	return &VoteService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// ToggleRequest identifies the tool to toggle.
type ToggleRequest struct {
	ToolID string `json:"tool_id" validate:"required"`
}

// Toggle flips the caller's upvote on a tool. Adds the vote if absent,
// removes it if present, and returns the resulting state. A concurrent
// toggle on the same (tool, user) pair surfaces as a retryable conflict.
func (s *VoteService) Toggle(ctx context.Context, userID string, req ToggleRequest) (*domain.VoteState, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	state, err := s.store.ToggleUpvote(ctx, req.ToolID, userID)
	if err != nil {
		switch {
		case domainerrors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("tool not found")
		case domainerrors.Is(err, store.ErrVoteConflict):
			return nil, domainerrors.Conflict("vote state changed concurrently, retry")
		}
		return nil, fmt.Errorf("toggle upvote: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Vote toggled",
			"tool_id", req.ToolID,
			"user_id", userID,
			"voted", state.Voted,
			"count", state.Count,
		)
	}

	return state, nil
}

// Status returns the caller's vote on a tool and the tool's counter.
// An empty userID is the anonymous case: voted is always false.
func (s *VoteService) Status(ctx context.Context, toolID, userID string) (*domain.VoteState, error) {
	state, err := s.store.UpvoteStatus(ctx, toolID, userID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tool not found")
		}
		return nil, fmt.Errorf("upvote status: %w", err)
	}
	return state, nil
}

// UpvotedSubset returns which of the given tool IDs the user has upvoted.
// This backs the batch status read used to hydrate listing pages.
func (s *VoteService) UpvotedSubset(ctx context.Context, userID string, toolIDs []string) ([]string, error) {
	voted, err := s.store.UpvotedToolIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("upvoted tool IDs: %w", err)
	}

	if len(toolIDs) == 0 {
		return voted, nil
	}

	votedSet := make(map[string]struct{}, len(voted))
	for _, id := range voted {
		votedSet[id] = struct{}{}
	}

	subset := make([]string, 0, len(toolIDs))
	for _, id := range toolIDs {
		if _, ok := votedSet[id]; ok {
			subset = append(subset, id)
		}
	}
	return subset, nil
}

// Recount overwrites a tool's counter with the live ledger count.
// This is the admin repair for drift introduced outside the toggle path.
func (s *VoteService) Recount(ctx context.Context, toolID string) (int, error) {
	count, err := s.store.RecountToolUpvotes(ctx, toolID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return 0, domainerrors.NotFound("tool not found")
		}
		return 0, fmt.Errorf("recount upvotes: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Upvote counter recounted", "tool_id", toolID, "count", count)
	}

	return count, nil
}

// RecountAll repairs every tool's counter and returns how many changed.
func (s *VoteService) RecountAll(ctx context.Context) (int, error) {
	changed, err := s.store.RecountAllUpvotes(ctx)
	if err != nil {
		return 0, fmt.Errorf("recount all upvotes: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("All upvote counters recounted", "changed", changed)
	}

	return changed, nil
}
