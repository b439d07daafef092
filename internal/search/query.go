package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // User's search query

	// Filters
	CategorySlug string // Filter by exact category slug
	Pricing      string // Filter by pricing tier
	Platform     string // Filter by platform tag

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy string // "relevance", "upvotes", "recent", "name"

	// Options
	IncludeFacets bool // Include pricing/category facet counts
	Highlight     bool // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		Offset:        0,
		SortBy:        "relevance",
		IncludeFacets: true,
		Highlight:     true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitzero"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID           string            `json:"id"`
	Slug         string            `json:"slug"`
	Score        float64           `json:"score"`
	Name         string            `json:"name"`
	Tagline      string            `json:"tagline,omitempty"`
	CategoryName string            `json:"category_name,omitempty"`
	CategorySlug string            `json:"category_slug,omitempty"`
	Pricing      string            `json:"pricing,omitempty"`
	UpvoteCount  int               `json:"upvote_count"`
	Highlights   map[string]string `json:"highlights,omitempty"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Pricing    []FacetCount `json:"pricing,omitempty"`
	Categories []FacetCount `json:"categories,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Build the query
	searchQuery := buildSearchQuery(params)

	// Create search request
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	// Add sorting
	addSorting(searchRequest, params)

	// Add facets
	if params.IncludeFacets {
		searchRequest.AddFacet("pricing", bleve.NewFacetRequest("pricing", 10))
		searchRequest.AddFacet("category_slug", bleve.NewFacetRequest("category_slug", 20))
	}

	// Add highlighting
	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("tagline")
	}

	// Request stored fields
	searchRequest.Fields = []string{
		"id", "slug", "name", "tagline", "category_name", "category_slug",
		"pricing", "upvote_count",
	}

	// Execute search
	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	// Convert results
	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		// Extract stored fields
		if sl, ok := hit.Fields["slug"].(string); ok {
			searchHit.Slug = sl
		}
		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if tl, ok := hit.Fields["tagline"].(string); ok {
			searchHit.Tagline = tl
		}
		if cn, ok := hit.Fields["category_name"].(string); ok {
			searchHit.CategoryName = cn
		}
		if cs, ok := hit.Fields["category_slug"].(string); ok {
			searchHit.CategorySlug = cs
		}
		if p, ok := hit.Fields["pricing"].(string); ok {
			searchHit.Pricing = p
		}
		if uc, ok := hit.Fields["upvote_count"].(float64); ok {
			searchHit.UpvoteCount = int(uc)
		}

		// Extract highlights
		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	// Extract facets
	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Main text query across name, tagline, description, and category name.
	// Name matches are boosted hardest so searching "notion" surfaces the
	// tool itself above tools that merely mention it.
	if params.Query != "" {
		textQueries := []query.Query{}

		// Name match with highest boost
		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		// Tagline match
		taglineMatch := bleve.NewMatchQuery(params.Query)
		taglineMatch.SetField("tagline")
		taglineMatch.SetBoost(2.0)
		textQueries = append(textQueries, taglineMatch)

		// Description match
		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		textQueries = append(textQueries, descMatch)

		// Category name match so "design" finds design tools
		categoryMatch := bleve.NewMatchQuery(params.Query)
		categoryMatch.SetField("category_name")
		categoryMatch.SetBoost(1.5)
		textQueries = append(textQueries, categoryMatch)

		// Add fuzzy matching for typo tolerance on name
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		// Combine with OR (match any field)
		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Category filter
	if params.CategorySlug != "" {
		cq := bleve.NewTermQuery(params.CategorySlug)
		cq.SetField("category_slug")
		queries = append(queries, cq)
	}

	// Pricing filter
	if params.Pricing != "" {
		pq := bleve.NewTermQuery(params.Pricing)
		pq.SetField("pricing")
		queries = append(queries, pq)
	}

	// Platform filter
	if params.Platform != "" {
		pq := bleve.NewTermQuery(params.Platform)
		pq.SetField("platforms")
		queries = append(queries, pq)
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order. Relevance ties break on upvotes, so
// equally-matching tools surface by community preference.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	switch params.SortBy {
	case "upvotes":
		req.SortBy([]string{"-upvote_count", "-_score"})
	case "recent":
		req.SortBy([]string{"-created_at"})
	case "name":
		req.SortBy([]string{"name"})
	default:
		req.SortBy([]string{"-_score", "-upvote_count"})
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) SearchFacets {
	facets := SearchFacets{}

	if pricingFacet, ok := result.Facets["pricing"]; ok {
		for _, term := range pricingFacet.Terms.Terms() {
			facets.Pricing = append(facets.Pricing, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if categoryFacet, ok := result.Facets["category_slug"]; ok {
		for _, term := range categoryFacet.Terms.Terms() {
			facets.Categories = append(facets.Categories, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	return facets
}
