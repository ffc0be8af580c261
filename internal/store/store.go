package store

import (
	"context"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

// CatalogIndexer keeps the catalogue search index in step with store writes.
// Set on the store after creation to avoid a dependency cycle with the index.
type CatalogIndexer interface {
	IndexBook(ctx context.Context, book *domain.CatalogBook) error
	DeleteBook(ctx context.Context, bookID int64) error
}

// NoopCatalogIndexer is a no-op implementation for testing.
type NoopCatalogIndexer struct{}

// IndexBook is a no-op.
func (NoopCatalogIndexer) IndexBook(context.Context, *domain.CatalogBook) error { return nil }

// DeleteBook is a no-op.
func (NoopCatalogIndexer) DeleteBook(context.Context, int64) error { return nil }

// NewNoopCatalogIndexer creates a new no-op catalogue indexer.
func NewNoopCatalogIndexer() CatalogIndexer {
	return NoopCatalogIndexer{}
}
