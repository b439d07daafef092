package store

// PaginationParams contains offset pagination request parameters.
type PaginationParams struct {
	Page    int // 1-based page number (defaults to 1)
	PerPage int // Items per page (defaults to 20 with a maximum of 100)
}

// PaginatedResult contains paginated data and metadata.
type PaginatedResult[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// DefaultPaginationParams returns sensible defaults.
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Page:    1,
		PerPage: 20,
	}
}

// Validate checks and corrects pagination parameters.
func (p *PaginationParams) Validate() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 20
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset returns the SQL offset for the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPaginatedResult assembles a result with computed page metadata.
func NewPaginatedResult[T any](items []T, params PaginationParams, total int) PaginatedResult[T] {
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.PerPage - 1) / params.PerPage
	}
	return PaginatedResult[T]{
		Items:      items,
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    params.Page < totalPages,
	}
}
