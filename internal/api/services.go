package api

import (
	"github.com/productivite/productivite-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth     *service.AuthService
	Session  *service.SessionService
	Tool     *service.ToolService
	Category *service.CategoryService
	Vote     *service.VoteService
	Review   *service.ReviewService
	Search   *service.SearchService
	Admin    *service.AdminService
}
