package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/productivite/productivite-server/internal/search"
	"github.com/productivite/productivite-server/internal/store"
	"github.com/productivite/productivite-server/internal/validation"
)

// SearchService fronts the full-text index: public queries and the
// admin-triggered full sync from the store.
type SearchService struct {
	store     store.Store
	index     *search.SearchIndex
	validator *validation.Validator
	logger    *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(
	store store.Store,
	index *search.SearchIndex,
	validator *validation.Validator,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		store:     store,
		index:     index,
		validator: validator,
		logger:    logger,
	}
}

// SearchRequest contains a search query with optional facet filters.
type SearchRequest struct {
	Query    string `json:"q" validate:"omitempty,max=200"`
	Category string `json:"category,omitempty" validate:"omitempty,slug"`
	Pricing  string `json:"pricing,omitempty" validate:"omitempty,oneof=free freemium paid enterprise"`
	Platform string `json:"platform,omitempty" validate:"omitempty,oneof=web ios android mac windows linux"`
	Sort     string `json:"sort,omitempty" validate:"omitempty,oneof=relevance upvotes recent name"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100"`
	Offset   int    `json:"offset,omitempty" validate:"omitempty,gte=0"`
}

// Search runs a query against the index.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*search.SearchResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	params := search.DefaultSearchParams()
	params.Query = req.Query
	params.CategorySlug = req.Category
	params.Pricing = req.Pricing
	params.Platform = req.Platform
	if req.Sort != "" {
		params.SortBy = req.Sort
	}
	if req.Limit > 0 {
		params.Limit = req.Limit
	}
	params.Offset = req.Offset

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return result, nil
}

// SyncAll rebuilds the index from the store: every published tool is
// re-indexed, everything else disappears. A failed sync leaves the index
// incomplete; the operator re-runs it.
func (s *SearchService) SyncAll(ctx context.Context) (int, error) {
	tools, err := s.store.ListAllTools(ctx)
	if err != nil {
		return 0, fmt.Errorf("list tools for sync: %w", err)
	}

	if err := s.index.SyncAll(tools); err != nil {
		return 0, fmt.Errorf("sync search index: %w", err)
	}

	published := 0
	for _, tool := range tools {
		if tool.IsPublished() {
			published++
		}
	}

	if s.logger != nil {
		s.logger.Info("Search index synced", "indexed", published)
	}

	return published, nil
}

// DocumentCount returns the number of indexed tools.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
