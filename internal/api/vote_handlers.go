package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/service"
)

func (s *Server) registerVoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleVote",
		Method:      http.MethodPost,
		Path:        "/api/v1/vote",
		Summary:     "Toggle upvote",
		Description: "Flips the caller's upvote on a tool: adds it if absent, removes it if present. Returns the resulting vote state.",
		Tags:        []string{"Votes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleVote)

	huma.Register(s.api, huma.Operation{
		OperationID: "getVote",
		Method:      http.MethodGet,
		Path:        "/api/v1/vote",
		Summary:     "Get vote state",
		Description: "Returns the caller's vote on a tool and the tool's upvote count. Anonymous callers always see voted=false.",
		Tags:        []string{"Votes"},
	}, s.handleGetVote)

	huma.Register(s.api, huma.Operation{
		OperationID: "getVotedTools",
		Method:      http.MethodGet,
		Path:        "/api/v1/votes",
		Summary:     "Get voted tools",
		Description: "Returns which of the given tools the caller has upvoted. With no filter, returns all of the caller's upvoted tool IDs.",
		Tags:        []string{"Votes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetVotedTools)
}

// === DTOs ===

// ToggleVoteInput wraps the toggle request for Huma.
type ToggleVoteInput struct {
	Body service.ToggleRequest
}

// VoteStateOutput wraps a vote state for Huma.
type VoteStateOutput struct {
	Body domain.VoteState
}

// GetVoteInput identifies the tool to read vote state for.
type GetVoteInput struct {
	ToolID string `query:"tool_id" required:"true" doc:"Tool ID"`
}

// GetVotedToolsInput optionally narrows the batch read.
type GetVotedToolsInput struct {
	ToolIDs string `query:"tool_ids" doc:"Comma-separated tool IDs to check"`
}

// VotedToolsResponse lists the caller's upvoted tools.
type VotedToolsResponse struct {
	ToolIDs []string `json:"tool_ids" doc:"Upvoted tool IDs"`
}

// VotedToolsOutput wraps the batch vote response for Huma.
type VotedToolsOutput struct {
	Body VotedToolsResponse
}

// === Handlers ===

func (s *Server) handleToggleVote(ctx context.Context, input *ToggleVoteInput) (*VoteStateOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.services.Vote.Toggle(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &VoteStateOutput{Body: *state}, nil
}

func (s *Server) handleGetVote(ctx context.Context, input *GetVoteInput) (*VoteStateOutput, error) {
	// Anonymous reads are allowed; they see voted=false with the live count.
	userID := maybeUserID(ctx)

	state, err := s.services.Vote.Status(ctx, input.ToolID, userID)
	if err != nil {
		return nil, err
	}

	return &VoteStateOutput{Body: *state}, nil
}

func (s *Server) handleGetVotedTools(ctx context.Context, input *GetVotedToolsInput) (*VotedToolsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	var toolIDs []string
	if input.ToolIDs != "" {
		for _, id := range strings.Split(input.ToolIDs, ",") {
			if id = strings.TrimSpace(id); id != "" {
				toolIDs = append(toolIDs, id)
			}
		}
	}

	voted, err := s.services.Vote.UpvotedSubset(ctx, userID, toolIDs)
	if err != nil {
		return nil, err
	}

	return &VotedToolsOutput{Body: VotedToolsResponse{ToolIDs: voted}}, nil
}
