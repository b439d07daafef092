package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/productivite/productivite-server/internal/config"
	"github.com/productivite/productivite-server/internal/logger"
	"github.com/productivite/productivite-server/internal/search"
	"github.com/productivite/productivite-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index and wires it into the
// store so tool writes are indexed incrementally.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewSearchIndex(search.Options{
		IndexPath: cfg.Search.IndexPath,
		Logger:    log.Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetSearchIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// TriggerSearchSyncIfNeeded rebuilds the index when it is empty but the
// database has tools, such as after an index version bump wiped it.
// Should be called after all services are wired.
func TriggerSearchSyncIfNeeded(i do.Injector) {
	searchService := do.MustInvoke[*service.SearchService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := searchService.DocumentCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	tools, err := storeHandle.ListAllTools(ctx)
	if err != nil || len(tools) == 0 {
		return
	}

	log.Info("Search index is empty but tools exist, triggering initial sync",
		"tool_count", len(tools),
	)

	go func() {
		if indexed, err := searchService.SyncAll(context.Background()); err != nil {
			log.Error("Initial search sync failed", "error", err)
		} else {
			log.Info("Initial search sync completed", "documents", indexed)
		}
	}()
}
