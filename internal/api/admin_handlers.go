package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "adminListTools",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/tools",
		Summary:     "List all tools",
		Description: "Returns every tool including drafts",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminListTools)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateTool",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/tools/{id}",
		Summary:     "Update tool",
		Description: "Edits a tool's listing fields. The upvote counter is never editable.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminUpdateTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminPublishTool",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/tools/{id}/publish",
		Summary:     "Publish tool",
		Description: "Makes a tool visible in public listings and search",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminPublishTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUnpublishTool",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/tools/{id}/unpublish",
		Summary:     "Unpublish tool",
		Description: "Reverts a tool to draft, removing it from listings and search",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminUnpublishTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteTool",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/tools/{id}",
		Summary:     "Delete tool",
		Description: "Deletes a tool along with its votes and reviews",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminDeleteTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminRecountTool",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/tools/{id}/recount",
		Summary:     "Recount tool upvotes",
		Description: "Overwrites a tool's upvote counter with the live vote count",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminRecountTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminRecountAllVotes",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/votes/recount",
		Summary:     "Recount all upvotes",
		Description: "Repairs every tool's upvote counter and reports how many changed",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminRecountAllVotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminCreateCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/categories",
		Summary:     "Create category",
		Description: "Creates a new category. The slug defaults to the slugified name.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminCreateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateCategory",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/categories/{id}",
		Summary:     "Update category",
		Description: "Edits a category. The slug is immutable.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminUpdateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteCategory",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/categories/{id}",
		Summary:     "Delete category",
		Description: "Deletes a category. Fails while any tool still references it.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminDeleteCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users",
		Summary:     "List users",
		Description: "Returns every account, newest first",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminPromoteUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/users/{id}/promote",
		Summary:     "Promote user",
		Description: "Grants a user the admin role",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminPromoteUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSyncSearch",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/search/sync",
		Summary:     "Sync search index",
		Description: "Rebuilds the search index from the database",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminSyncSearch)
}

// === DTOs ===

// ToolsResponse contains a full tool listing.
type ToolsResponse struct {
	Tools []*domain.Tool `json:"tools" doc:"All tools including drafts"`
}

// ToolsOutput wraps the full tool listing for Huma.
type ToolsOutput struct {
	Body ToolsResponse
}

// AdminUpdateToolInput wraps a tool edit for Huma.
type AdminUpdateToolInput struct {
	ID   string `path:"id" doc:"Tool ID"`
	Body service.UpdateToolRequest
}

// AdminToolIDInput identifies a tool by ID.
type AdminToolIDInput struct {
	ID string `path:"id" doc:"Tool ID"`
}

// RecountResponse reports the result of a counter repair.
type RecountResponse struct {
	Count int `json:"count" doc:"The repaired upvote count"`
}

// RecountOutput wraps a recount response for Huma.
type RecountOutput struct {
	Body RecountResponse
}

// RecountAllResponse reports a full counter repair.
type RecountAllResponse struct {
	Changed int `json:"changed" doc:"Number of tools whose counter changed"`
}

// RecountAllOutput wraps the full recount response for Huma.
type RecountAllOutput struct {
	Body RecountAllResponse
}

// CreateCategoryInput wraps a category creation for Huma.
type CreateCategoryInput struct {
	Body service.CreateCategoryRequest
}

// AdminUpdateCategoryInput wraps a category edit for Huma.
type AdminUpdateCategoryInput struct {
	ID   string `path:"id" doc:"Category ID"`
	Body service.UpdateCategoryRequest
}

// AdminCategoryIDInput identifies a category by ID.
type AdminCategoryIDInput struct {
	ID string `path:"id" doc:"Category ID"`
}

// UsersResponse contains the account listing.
type UsersResponse struct {
	Users []*domain.User `json:"users" doc:"Accounts, newest first"`
}

// UsersOutput wraps the account listing for Huma.
type UsersOutput struct {
	Body UsersResponse
}

// AdminUserIDInput identifies a user by ID.
type AdminUserIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// SyncSearchResponse reports the result of a full index sync.
type SyncSearchResponse struct {
	Indexed int `json:"indexed" doc:"Number of published tools indexed"`
}

// SyncSearchOutput wraps the sync response for Huma.
type SyncSearchOutput struct {
	Body SyncSearchResponse
}

// === Handlers ===

func (s *Server) handleAdminListTools(ctx context.Context, _ *struct{}) (*ToolsOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	tools, err := s.services.Tool.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ToolsOutput{Body: ToolsResponse{Tools: tools}}, nil
}

func (s *Server) handleAdminUpdateTool(ctx context.Context, input *AdminUpdateToolInput) (*ToolOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	tool, err := s.services.Tool.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ToolOutput{Body: tool}, nil
}

func (s *Server) handleAdminPublishTool(ctx context.Context, input *AdminToolIDInput) (*ToolOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	tool, err := s.services.Tool.Publish(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ToolOutput{Body: tool}, nil
}

func (s *Server) handleAdminUnpublishTool(ctx context.Context, input *AdminToolIDInput) (*ToolOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	tool, err := s.services.Tool.Unpublish(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ToolOutput{Body: tool}, nil
}

func (s *Server) handleAdminDeleteTool(ctx context.Context, input *AdminToolIDInput) (*MessageOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Tool.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tool deleted"}}, nil
}

func (s *Server) handleAdminRecountTool(ctx context.Context, input *AdminToolIDInput) (*RecountOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	count, err := s.services.Vote.Recount(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecountOutput{Body: RecountResponse{Count: count}}, nil
}

func (s *Server) handleAdminRecountAllVotes(ctx context.Context, _ *struct{}) (*RecountAllOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	changed, err := s.services.Vote.RecountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &RecountAllOutput{Body: RecountAllResponse{Changed: changed}}, nil
}

func (s *Server) handleAdminCreateCategory(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	category, err := s.services.Category.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: category}, nil
}

func (s *Server) handleAdminUpdateCategory(ctx context.Context, input *AdminUpdateCategoryInput) (*CategoryOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	category, err := s.services.Category.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: category}, nil
}

func (s *Server) handleAdminDeleteCategory(ctx context.Context, input *AdminCategoryIDInput) (*MessageOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Category.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Category deleted"}}, nil
}

func (s *Server) handleAdminListUsers(ctx context.Context, _ *struct{}) (*UsersOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := s.services.Admin.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &UsersOutput{Body: UsersResponse{Users: users}}, nil
}

func (s *Server) handleAdminPromoteUser(ctx context.Context, input *AdminUserIDInput) (*UserOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.Admin.PromoteUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: user}, nil
}

func (s *Server) handleAdminSyncSearch(ctx context.Context, _ *struct{}) (*SyncSearchOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	indexed, err := s.services.Search.SyncAll(ctx)
	if err != nil {
		return nil, err
	}

	return &SyncSearchOutput{Body: SyncSearchResponse{Indexed: indexed}}, nil
}
