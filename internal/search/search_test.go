package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

func sampleBooks() []domain.CatalogBook {
	return []domain.CatalogBook{
		{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: "Fiction", Year: 1925},
		{ID: 2, Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Romance", Year: 1813, IsPublicDomain: true},
		{ID: 3, Title: "Moby Dick", Author: "Herman Melville", Genre: "Adventure", Year: 1851, IsPublicDomain: true},
		{ID: 4, Title: "1984", Author: "George Orwell", Genre: "Science Fiction", Year: 1949},
	}
}

func newTestIndex(t *testing.T) *CatalogIndex {
	t.Helper()
	idx, err := NewCatalogIndex(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	require.NoError(t, idx.Rebuild(context.Background(), sampleBooks()))
	return idx
}

func hitIDs(r *Result) []int64 {
	ids := make([]int64, 0, len(r.Hits))
	for _, h := range r.Hits {
		ids = append(ids, h.BookID)
	}
	return ids
}

func TestRebuild_CountsDocuments(t *testing.T) {
	idx := newTestIndex(t)

	count, err := idx.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)

	// A second rebuild replaces rather than appends.
	require.NoError(t, idx.Rebuild(context.Background(), sampleBooks()[:2]))
	count, err = idx.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestSearch_ByTitleAuthorAndGenre(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	tests := []struct {
		query string
		want  int64
	}{
		{"gatsby", 1},
		{"austen", 2},
		{"adventure", 3},
		{"orwell", 4},
		{"Moby", 3},
		{"melv", 3},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, err := idx.Search(ctx, Params{Query: tt.query})
			require.NoError(t, err)
			require.NotEmpty(t, res.Hits)
			assert.Equal(t, tt.want, res.Hits[0].BookID)
		})
	}
}

func TestSearch_AllWordsMustMatch(t *testing.T) {
	idx := newTestIndex(t)

	res, err := idx.Search(context.Background(), Params{Query: "science fiction"})
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, hitIDs(res))
}

func TestSearch_PublicDomainOnly(t *testing.T) {
	idx := newTestIndex(t)

	res, err := idx.Search(context.Background(), Params{Query: "fiction", PublicDomainOnly: true})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)

	res, err = idx.Search(context.Background(), Params{Query: "dick", PublicDomainOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, hitIDs(res))
}

func TestSearch_EmptyQuery(t *testing.T) {
	idx := newTestIndex(t)

	res, err := idx.Search(context.Background(), Params{Query: "   "})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
	assert.Zero(t, res.Total)
}

func TestSearch_GenreFacets(t *testing.T) {
	idx := newTestIndex(t)

	res, err := idx.Search(context.Background(), Params{Query: "fiction"})
	require.NoError(t, err)

	slugs := make(map[string]int)
	for _, g := range res.Genres {
		slugs[g.Slug] = g.Count
	}
	assert.Equal(t, 1, slugs["fiction"])
	assert.Equal(t, 1, slugs["science-fiction"])
}

func TestIndexAndDeleteBook(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	book := &domain.CatalogBook{ID: 9, Title: "Frankenstein", Author: "Mary Shelley", Genre: "Horror", Year: 1818}
	require.NoError(t, idx.IndexBook(ctx, book))

	res, err := idx.Search(ctx, Params{Query: "frankenstein"})
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, hitIDs(res))

	require.NoError(t, idx.DeleteBook(ctx, 9))
	res, err = idx.Search(ctx, Params{Query: "frankenstein"})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)

	// Unknown ids are ignored.
	assert.NoError(t, idx.DeleteBook(ctx, 404))
}

func TestIndexBook_CancelledContext(t *testing.T) {
	idx := newTestIndex(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := idx.IndexBook(ctx, &domain.CatalogBook{ID: 10, Title: "Dracula"})
	assert.ErrorIs(t, err, context.Canceled)
}
