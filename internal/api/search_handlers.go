package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/productivite/productivite-server/internal/search"
	"github.com/productivite/productivite-server/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchTools",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search tools",
		Description: "Full-text search over published tools with facet filters",
		Tags:        []string{"Search"},
	}, s.handleSearchTools)
}

// === DTOs ===

// SearchInput carries the search query and facet filters.
type SearchInput struct {
	Query    string `query:"q" doc:"Search query"`
	Category string `query:"category" doc:"Filter by category slug"`
	Pricing  string `query:"pricing" doc:"Filter by pricing tier"`
	Platform string `query:"platform" doc:"Filter by platform"`
	Sort     string `query:"sort" doc:"Sort order: relevance (default), upvotes, recent, name"`
	Limit    int    `query:"limit" doc:"Maximum hits to return (max 100)"`
	Offset   int    `query:"offset" doc:"Hits to skip for paging"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body *search.SearchResult
}

// === Handlers ===

func (s *Server) handleSearchTools(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := s.services.Search.Search(ctx, service.SearchRequest{
		Query:    input.Query,
		Category: input.Category,
		Pricing:  input.Pricing,
		Platform: input.Platform,
		Sort:     input.Sort,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: result}, nil
}
