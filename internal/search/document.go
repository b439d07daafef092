// Package search provides full-text search over the tool directory using
// Bleve. Queries match tool names, taglines, and descriptions with fuzzy
// matching; results are ranked by relevance and then community upvotes.
package search

import (
	"github.com/productivite/productivite-server/internal/domain"
)

// ToolDocument is the document structure for the Bleve index.
//
// Design note: the category name and slug are denormalized into the tool
// document so a single query can match and filter without touching the
// database. The index holds only published tools; drafts are removed on
// unpublish.
type ToolDocument struct {
	// Identity
	ID   string `json:"id"`
	Slug string `json:"slug"`

	// Searchable text
	Name        string `json:"name"`
	Tagline     string `json:"tagline,omitempty"`
	Description string `json:"description,omitempty"`

	// Denormalized category for search and filtering
	CategoryName string `json:"category_name,omitempty"`
	CategorySlug string `json:"category_slug,omitempty"`

	// Keyword filters
	Pricing   string   `json:"pricing"`
	Platforms []string `json:"platforms,omitempty"`

	// Ranking signal: results tie-break on community upvotes
	UpvoteCount int `json:"upvote_count"`

	// Timestamp for recency sorting, Unix millis
	CreatedAt int64 `json:"created_at"`
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *ToolDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":           d.ID,
		"slug":         d.Slug,
		"name":         d.Name,
		"pricing":      d.Pricing,
		"upvote_count": d.UpvoteCount,
		"created_at":   d.CreatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Tagline != "" {
		m["tagline"] = d.Tagline
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.CategoryName != "" {
		m["category_name"] = d.CategoryName
	}
	if d.CategorySlug != "" {
		m["category_slug"] = d.CategorySlug
	}
	if len(d.Platforms) > 0 {
		m["platforms"] = d.Platforms
	}

	return m
}

// ToolToDocument converts a domain Tool to a ToolDocument.
// The tool's Category must be populated for category search to work.
func ToolToDocument(tool *domain.Tool) *ToolDocument {
	doc := &ToolDocument{
		ID:          tool.ID,
		Slug:        tool.Slug,
		Name:        tool.Name,
		Tagline:     tool.Tagline,
		Description: tool.Description,
		Pricing:     string(tool.Pricing),
		UpvoteCount: tool.UpvoteCount,
		CreatedAt:   tool.CreatedAt.UnixMilli(),
	}

	for _, p := range tool.Platforms {
		doc.Platforms = append(doc.Platforms, string(p))
	}
	if tool.Category != nil {
		doc.CategoryName = tool.Category.Name
		doc.CategorySlug = tool.Category.Slug
	}

	return doc
}
