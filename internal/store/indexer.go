package store

import "github.com/productivite/productivite-server/internal/domain"

// SearchIndexer keeps the search index in step with tool writes.
// The SQLite store calls these after successful commits; implementations
// must tolerate being called for tools that are not yet indexed.
type SearchIndexer interface {
	IndexTool(tool *domain.Tool) error
	DeleteTool(toolID string) error
}

// NoopSearchIndexer is a SearchIndexer that does nothing.
// Used before the real index is wired up, and in tests.
type NoopSearchIndexer struct{}

// NewNoopSearchIndexer creates a no-op search indexer.
func NewNoopSearchIndexer() *NoopSearchIndexer { return &NoopSearchIndexer{} }

// IndexTool does nothing.
func (NoopSearchIndexer) IndexTool(_ *domain.Tool) error { return nil }

// DeleteTool does nothing.
func (NoopSearchIndexer) DeleteTool(_ string) error { return nil }
