package store

import "github.com/productivite/productivite-server/internal/domain"

// ToolSort selects the ordering of tool listings.
type ToolSort string

const (
	// ToolSortUpvotes orders by upvote count descending (default).
	ToolSortUpvotes ToolSort = "upvotes"
	// ToolSortNewest orders by creation time descending.
	ToolSortNewest ToolSort = "newest"
	// ToolSortName orders alphabetically by name.
	ToolSortName ToolSort = "name"
)

// ValidToolSort reports whether s is a recognized sort order.
func ValidToolSort(s ToolSort) bool {
	switch s {
	case ToolSortUpvotes, ToolSortNewest, ToolSortName:
		return true
	}
	return false
}

// ToolFilter narrows tool listings.
// Zero values mean "no constraint".
type ToolFilter struct {
	CategorySlug string
	Pricing      domain.Pricing
	Platform     domain.Platform
	Status       domain.ToolStatus // empty means published only
	SubmittedBy  string
	Search       string // substring match on name and tagline
	Sort         ToolSort
}
