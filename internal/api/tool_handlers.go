package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/service"
	"github.com/productivite/productivite-server/internal/store"
)

func (s *Server) registerToolRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTools",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools",
		Summary:     "List tools",
		Description: "Returns published tools, filtered and paginated",
		Tags:        []string{"Tools"},
	}, s.handleListTools)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTool",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools/{slug}",
		Summary:     "Get tool",
		Description: "Returns a published tool by slug with its review rating. Admins also see drafts.",
		Tags:        []string{"Tools"},
	}, s.handleGetTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "submitTool",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools",
		Summary:     "Submit tool",
		Description: "Submits a new tool. Submissions start as drafts and are published by admins.",
		Tags:        []string{"Tools"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSubmitTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "getToolReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools/{slug}/reviews",
		Summary:     "Get tool reviews",
		Description: "Returns a tool's reviews, newest first",
		Tags:        []string{"Tools", "Reviews"},
	}, s.handleGetToolReviews)
}

// === DTOs ===

// ListToolsInput narrows and pages the public listing.
type ListToolsInput struct {
	Category string `query:"category" doc:"Filter by category slug"`
	Pricing  string `query:"pricing" doc:"Filter by pricing tier (free, freemium, paid, enterprise)"`
	Platform string `query:"platform" doc:"Filter by platform (web, ios, android, mac, windows, linux)"`
	Sort     string `query:"sort" doc:"Sort order: upvotes (default), newest, name"`
	Search   string `query:"search" doc:"Substring match on name and tagline"`
	Page     int    `query:"page" doc:"1-based page number"`
	PerPage  int    `query:"per_page" doc:"Items per page (max 100)"`
}

// ToolListOutput wraps the paginated tool listing for Huma.
type ToolListOutput struct {
	Body store.PaginatedResult[*domain.Tool]
}

// GetToolInput identifies a tool by slug.
type GetToolInput struct {
	Slug string `path:"slug" doc:"Tool slug"`
}

// RatingSummary aggregates a tool's reviews.
type RatingSummary struct {
	Average float64 `json:"average" doc:"Average rating, 0 when unreviewed"`
	Count   int     `json:"count" doc:"Number of reviews"`
}

// ToolDetailResponse is a tool with its review rating.
type ToolDetailResponse struct {
	Tool   *domain.Tool  `json:"tool" doc:"The tool"`
	Rating RatingSummary `json:"rating" doc:"Review rating summary"`
}

// ToolDetailOutput wraps the tool detail for Huma.
type ToolDetailOutput struct {
	Body ToolDetailResponse
}

// SubmitToolInput wraps a tool submission for Huma.
type SubmitToolInput struct {
	Body service.SubmitToolRequest
}

// ToolOutput wraps a single tool for Huma.
type ToolOutput struct {
	Body *domain.Tool
}

// ReviewsResponse contains a tool's reviews.
type ReviewsResponse struct {
	Reviews []*domain.Review `json:"reviews" doc:"Reviews, newest first"`
	Rating  RatingSummary    `json:"rating" doc:"Review rating summary"`
}

// ReviewsOutput wraps the reviews response for Huma.
type ReviewsOutput struct {
	Body ReviewsResponse
}

// === Handlers ===

func (s *Server) handleListTools(ctx context.Context, input *ListToolsInput) (*ToolListOutput, error) {
	result, err := s.services.Tool.List(ctx, service.ListToolsRequest{
		Category: input.Category,
		Pricing:  input.Pricing,
		Platform: input.Platform,
		Sort:     input.Sort,
		Search:   input.Search,
		Page:     input.Page,
		PerPage:  input.PerPage,
	})
	if err != nil {
		return nil, err
	}

	return &ToolListOutput{Body: result}, nil
}

func (s *Server) handleGetTool(ctx context.Context, input *GetToolInput) (*ToolDetailOutput, error) {
	includeDrafts := s.isAdminCaller(ctx)

	tool, avg, count, err := s.services.Tool.GetBySlug(ctx, input.Slug, includeDrafts)
	if err != nil {
		return nil, err
	}

	return &ToolDetailOutput{Body: ToolDetailResponse{
		Tool:   tool,
		Rating: RatingSummary{Average: avg, Count: count},
	}}, nil
}

func (s *Server) handleSubmitTool(ctx context.Context, input *SubmitToolInput) (*ToolOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tool, err := s.services.Tool.Submit(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ToolOutput{Body: tool}, nil
}

func (s *Server) handleGetToolReviews(ctx context.Context, input *GetToolInput) (*ReviewsOutput, error) {
	includeDrafts := s.isAdminCaller(ctx)

	tool, avg, count, err := s.services.Tool.GetBySlug(ctx, input.Slug, includeDrafts)
	if err != nil {
		return nil, err
	}

	reviews, err := s.services.Review.ListByTool(ctx, tool.ID)
	if err != nil {
		return nil, err
	}

	return &ReviewsOutput{Body: ReviewsResponse{
		Reviews: reviews,
		Rating:  RatingSummary{Average: avg, Count: count},
	}}, nil
}
