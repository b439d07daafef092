package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for tool documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on names and taglines with English stemming
//  2. Exact keyword matching for pricing, platform, and category filters
//  3. Numeric upvote counts for ranking tie-breaks
//  4. Term vectors on the name field for highlighting
func buildIndexMapping() mapping.IndexMapping {
	// Create the index mapping
	indexMapping := bleve.NewIndexMapping()

	// Use English analyzer as default for text fields
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	// Create document mapping
	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name field - primary search target, boosted
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Tagline - searchable text
	taglineFieldMapping := bleve.NewTextFieldMapping()
	taglineFieldMapping.Analyzer = en.AnalyzerName
	taglineFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("tagline", taglineFieldMapping)

	// Description - searchable but not stored (too large)
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	// Category name - searchable so "design" finds design tools
	categoryNameFieldMapping := bleve.NewTextFieldMapping()
	categoryNameFieldMapping.Analyzer = en.AnalyzerName
	categoryNameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category_name", categoryNameFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// ID and slug - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	slugFieldMapping := bleve.NewTextFieldMapping()
	slugFieldMapping.Analyzer = keyword.Name
	slugFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("slug", slugFieldMapping)

	// Category slug - for exact category filtering
	categorySlugFieldMapping := bleve.NewTextFieldMapping()
	categorySlugFieldMapping.Analyzer = keyword.Name
	categorySlugFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category_slug", categorySlugFieldMapping)

	// Pricing - for exact filtering and faceting
	pricingFieldMapping := bleve.NewTextFieldMapping()
	pricingFieldMapping.Analyzer = keyword.Name
	pricingFieldMapping.Store = true
	pricingFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("pricing", pricingFieldMapping)

	// Platforms - keyword analyzer keeps tags intact
	platformsFieldMapping := bleve.NewTextFieldMapping()
	platformsFieldMapping.Analyzer = keyword.Name
	platformsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("platforms", platformsFieldMapping)

	// --- Numeric fields (ranking, sorting) ---

	// Upvote count - ranking tie-break and popularity sort
	upvoteFieldMapping := bleve.NewNumericFieldMapping()
	upvoteFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("upvote_count", upvoteFieldMapping)

	// Created at - for sorting by recency
	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	// Register the document mapping
	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
