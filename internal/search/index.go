package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

const batchSize = 500

// CatalogIndex is an in-memory full-text index over the book catalogue.
// It is rebuilt from the store at startup and kept current through the
// store.CatalogIndexer hooks.
//
// All methods are safe for concurrent use.
type CatalogIndex struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

var _ store.CatalogIndexer = (*CatalogIndex)(nil)

// NewCatalogIndex creates an empty in-memory index.
func NewCatalogIndex(logger *slog.Logger) (*CatalogIndex, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create catalog index: %w", err)
	}

	return &CatalogIndex{index: index, logger: logger}, nil
}

// Close releases the index.
func (c *CatalogIndex) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.Close()
}

// IndexBook adds or replaces a single book.
func (c *CatalogIndex) IndexBook(ctx context.Context, book *domain.CatalogBook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if book == nil {
		return fmt.Errorf("index book: nil book")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.index.Index(docID(book.ID), newCatalogDocument(book)); err != nil {
		return fmt.Errorf("index book %d: %w", book.ID, err)
	}
	return nil
}

// DeleteBook removes a book. Removing an unknown id is not an error.
func (c *CatalogIndex) DeleteBook(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.index.Delete(docID(id)); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}

// Rebuild replaces the index contents with books.
func (c *CatalogIndex) Rebuild(ctx context.Context, books []domain.CatalogBook) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Info("rebuilding catalog index", "book_count", len(books))

	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create catalog index: %w", err)
	}

	batch := fresh.NewBatch()
	for i := range books {
		if err := ctx.Err(); err != nil {
			_ = fresh.Close()
			return err
		}
		if err := batch.Index(docID(books[i].ID), newCatalogDocument(&books[i])); err != nil {
			_ = fresh.Close()
			return fmt.Errorf("batch index book %d: %w", books[i].ID, err)
		}
		if batch.Size() >= batchSize {
			if err := fresh.Batch(batch); err != nil {
				_ = fresh.Close()
				return fmt.Errorf("execute batch: %w", err)
			}
			batch.Reset()
		}
	}
	if batch.Size() > 0 {
		if err := fresh.Batch(batch); err != nil {
			_ = fresh.Close()
			return fmt.Errorf("execute batch: %w", err)
		}
	}

	old := c.index
	c.index = fresh
	if err := old.Close(); err != nil {
		c.logger.Warn("failed to close previous catalog index", "error", err)
	}

	c.logger.Info("catalog index rebuilt", "book_count", len(books))
	return nil
}

// DocumentCount returns the number of indexed books.
func (c *CatalogIndex) DocumentCount() (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.DocCount()
}
