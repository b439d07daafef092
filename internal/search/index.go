package search

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/productivite/productivite-server/internal/domain"
)

// SearchIndex wraps a Bleve index with domain-specific operations.
//
// Thread safety: All public methods are safe for concurrent use.
// The mutex protects against index corruption during rebuild operations.
type SearchIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex // Protects index operations during rebuild
}

// Options configures the search index.
type Options struct {
	IndexPath string       // Bleve index directory
	Logger    *slog.Logger // Logger for operations (uses stderr if nil)
}

// mappingVersion is incremented whenever the index mapping changes.
// This triggers an automatic rebuild on startup when the version doesn't match.
const mappingVersion = "1"

// NewSearchIndex creates or opens a search index.
// If an existing index is found, it opens it. Otherwise, creates a new one.
// If the existing index is corrupted or has an outdated mapping, it's removed and recreated.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexPath := opts.IndexPath
	versionPath := indexPath + ".version"

	var index bleve.Index
	var err error
	needsRebuild := false

	// Check mapping version - rebuild if version file missing or mismatched
	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil {
			// Version file missing but index exists - this is an old index
			logger.Info("search index has no version file, will rebuild with current mapping",
				"new_version", mappingVersion,
			)
			needsRebuild = true
		} else if string(existingVersion) != mappingVersion {
			logger.Info("search index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	// Try to open existing index (if not forcing rebuild)
	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing index, will recreate",
				"path", indexPath,
				"error", err,
			)
			needsRebuild = true
		}
	}

	// Remove old index if rebuild needed
	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	// Create new index if needed
	if index == nil {
		indexMapping := buildIndexMapping()
		index, err = bleve.New(indexPath, indexMapping)
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		// Write version file
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0644); writeErr != nil {
			logger.Warn("failed to write search version file", "error", writeErr)
		}
		logger.Info("created new search index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing search index", "path", indexPath)
	}

	return &SearchIndex{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexTool indexes a single tool, or removes it when unpublished.
// Only published tools are searchable; indexing a draft acts as a delete
// so unpublish takes effect immediately.
func (s *SearchIndex) IndexTool(tool *domain.Tool) error {
	if !tool.IsPublished() {
		return s.DeleteTool(tool.ID)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := ToolToDocument(tool)
	// Convert to map to ensure field names match the mapping (lowercase)
	return s.index.Index(doc.ID, doc.ToMap())
}

// DeleteTool removes a tool from the index.
// Deleting an unindexed tool is a no-op.
func (s *SearchIndex) DeleteTool(toolID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(toolID)
}

// DocumentCount returns the total number of indexed documents.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// SyncAll replaces the entire index contents with the given tools.
// This is the full-replace sync contract: the index is rebuilt from
// scratch, so deleted and unpublished tools disappear without tracking
// individual deletions. Drafts in the input are skipped.
func (s *SearchIndex) SyncAll(tools []*domain.Tool) error {
	if err := s.rebuild(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500

	batch := s.index.NewBatch()
	indexed := 0
	for _, tool := range tools {
		if !tool.IsPublished() {
			continue
		}
		doc := ToolToDocument(tool)
		if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
			return fmt.Errorf("batch index %s: %w", doc.ID, err)
		}
		indexed++
		if batch.Size() >= batchSize {
			if err := s.index.Batch(batch); err != nil {
				return fmt.Errorf("commit batch: %w", err)
			}
			batch = s.index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}
	}

	s.logger.Info("search index synced", "indexed", indexed, "total", len(tools))
	return nil
}

// rebuild drops the existing index and creates a new one.
//
// IMPORTANT: This acquires an exclusive lock and blocks all other operations.
func (s *SearchIndex) rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Close existing index
	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	// Remove index directory
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}

	// Create fresh index
	indexMapping := buildIndexMapping()
	index, err := bleve.New(s.path, indexMapping)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	s.index = index
	s.logger.Info("rebuilt search index", "path", s.path)

	return nil
}
