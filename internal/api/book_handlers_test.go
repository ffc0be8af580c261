package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

func seedCatalog(t *testing.T, ts *testServer) []*domain.CatalogBook {
	t.Helper()
	_, err := ts.services.Catalog.SeedSampleBooks(context.Background())
	require.NoError(t, err)

	books := decode[[]*domain.CatalogBook](t, ts.api.Get("/books"))
	require.Len(t, books, 5)
	return books
}

func findBook(books []*domain.CatalogBook, title string) *domain.CatalogBook {
	for _, b := range books {
		if b.Title == title {
			return b
		}
	}
	return nil
}

func TestBooks_ListAndPublicDomain(t *testing.T) {
	ts := setupTestServer(t)
	seedCatalog(t, ts)

	pd := decode[[]domain.CatalogBook](t, ts.api.Get("/books/public-domain"))
	require.Len(t, pd, 2)
	assert.Equal(t, "Moby Dick", pd[0].Title)
	assert.Equal(t, "Pride and Prejudice", pd[1].Title)
}

func TestBooks_AddUpdateDelete(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/books", map[string]any{"title": "Dracula", "author": "Bram Stoker", "genre": "Horror", "year": 1897, "isPublicDomain": true})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	book := decode[domain.CatalogBook](t, resp)

	resp = ts.api.Patch(fmt.Sprintf("/books/%d", book.ID), map[string]any{"isRead": true})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.True(t, decode[domain.CatalogBook](t, resp).IsRead)

	resp = ts.api.Delete(fmt.Sprintf("/books/%d", book.ID))
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Delete(fmt.Sprintf("/books/%d", book.ID))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Post("/books", map[string]any{"title": "", "author": "Nobody"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestBooks_Download(t *testing.T) {
	ts := setupTestServer(t)
	books := seedCatalog(t, ts)
	member := ts.createMember(t, "reader")

	moby := findBook(books, "Moby Dick")
	require.NotNil(t, moby)

	resp := ts.api.Get(fmt.Sprintf("/books/%d/download?memberId=%d", moby.ID, member.ID))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), "text/plain"))
	assert.Equal(t, `attachment; filename="Moby Dick.txt"`, resp.Header().Get("Content-Disposition"))
	assert.Contains(t, resp.Body.String(), `This is a simulated download for "Moby Dick".`)

	gatsby := findBook(books, "The Great Gatsby")
	require.NotNil(t, gatsby)
	resp = ts.api.Get(fmt.Sprintf("/books/%d/download", gatsby.ID))
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "book not available for download", decode[errorBody](t, resp).Error)

	stats := decode[domain.Statistics](t, ts.api.Get("/statistics"))
	assert.Equal(t, domain.Statistics{TotalBooks: 5, PublicDomainBooks: 2, TotalDownloads: 1}, stats)
}

func TestBooks_Search(t *testing.T) {
	ts := setupTestServer(t)
	seedCatalog(t, ts)

	resp := ts.api.Get("/books/search?q=orwell")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	res := decode[SearchBooksResponse](t, resp)
	require.Len(t, res.Books, 1)
	assert.Equal(t, "1984", res.Books[0].Title)

	resp = ts.api.Get("/books/search?q=")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
