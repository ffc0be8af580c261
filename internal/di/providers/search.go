package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookcircle/bookcircle-server/internal/logger"
	"github.com/bookcircle/bookcircle-server/internal/search"
)

// SearchIndexHandle wraps the catalogue index with shutdown capability.
type SearchIndexHandle struct {
	*search.CatalogIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex creates the in-memory catalogue index and hooks it
// into the store so catalogue writes keep it current.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewCatalogIndex(log.Component("search"))
	if err != nil {
		return nil, err
	}

	storeHandle.SetCatalogIndexer(index)

	return &SearchIndexHandle{CatalogIndex: index}, nil
}
