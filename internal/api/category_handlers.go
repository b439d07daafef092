package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/service"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns all categories with their published tool counts",
		Tags:        []string{"Categories"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategory",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{slug}",
		Summary:     "Get category",
		Description: "Returns a category by slug",
		Tags:        []string{"Categories"},
	}, s.handleGetCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategoryTools",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{slug}/tools",
		Summary:     "Get category tools",
		Description: "Returns the published tools in a category, paginated",
		Tags:        []string{"Categories", "Tools"},
	}, s.handleGetCategoryTools)
}

// === DTOs ===

// CategoriesResponse contains the category listing.
type CategoriesResponse struct {
	Categories []*domain.Category `json:"categories" doc:"Categories in sort order"`
}

// CategoriesOutput wraps the category listing for Huma.
type CategoriesOutput struct {
	Body CategoriesResponse
}

// GetCategoryInput identifies a category by slug.
type GetCategoryInput struct {
	Slug string `path:"slug" doc:"Category slug"`
}

// CategoryOutput wraps a single category for Huma.
type CategoryOutput struct {
	Body *domain.Category
}

// GetCategoryToolsInput pages a category's tool listing.
type GetCategoryToolsInput struct {
	Slug    string `path:"slug" doc:"Category slug"`
	Sort    string `query:"sort" doc:"Sort order: upvotes (default), newest, name"`
	Page    int    `query:"page" doc:"1-based page number"`
	PerPage int    `query:"per_page" doc:"Items per page (max 100)"`
}

// === Handlers ===

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*CategoriesOutput, error) {
	categories, err := s.services.Category.List(ctx)
	if err != nil {
		return nil, err
	}

	return &CategoriesOutput{Body: CategoriesResponse{Categories: categories}}, nil
}

func (s *Server) handleGetCategory(ctx context.Context, input *GetCategoryInput) (*CategoryOutput, error) {
	category, err := s.services.Category.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: category}, nil
}

func (s *Server) handleGetCategoryTools(ctx context.Context, input *GetCategoryToolsInput) (*ToolListOutput, error) {
	// 404 for unknown categories rather than an empty listing.
	if _, err := s.services.Category.GetBySlug(ctx, input.Slug); err != nil {
		return nil, err
	}

	result, err := s.services.Tool.List(ctx, service.ListToolsRequest{
		Category: input.Slug,
		Sort:     input.Sort,
		Page:     input.Page,
		PerPage:  input.PerPage,
	})
	if err != nil {
		return nil, err
	}

	return &ToolListOutput{Body: result}, nil
}
