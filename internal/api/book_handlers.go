package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/books",
		Summary:     "List catalogue",
		Description: "Returns every catalogue book, newest first",
		Tags:        []string{"Catalogue"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPublicDomainBooks",
		Method:      http.MethodGet,
		Path:        "/books/public-domain",
		Summary:     "List public-domain books",
		Description: "Returns downloadable books ordered by title",
		Tags:        []string{"Catalogue"},
	}, s.handleListPublicDomainBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/books/search",
		Summary:     "Search catalogue",
		Description: "Full-text search over title, author and genre",
		Tags:        []string{"Catalogue"},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addBook",
		Method:        http.MethodPost,
		Path:          "/books",
		Summary:       "Add book",
		Tags:          []string{"Catalogue"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPatch,
		Path:        "/books/{id}",
		Summary:     "Mark book read or unread",
		Tags:        []string{"Catalogue"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteBook",
		Method:        http.MethodDelete,
		Path:          "/books/{id}",
		Summary:       "Delete book",
		Tags:          []string{"Catalogue"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "downloadBook",
		Method:      http.MethodGet,
		Path:        "/books/{id}/download",
		Summary:     "Download book",
		Description: "Returns a simulated text download of a public-domain book and records it",
		Tags:        []string{"Catalogue"},
	}, s.handleDownloadBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStatistics",
		Method:      http.MethodGet,
		Path:        "/statistics",
		Summary:     "Catalogue statistics",
		Tags:        []string{"Catalogue"},
	}, s.handleGetStatistics)
}

// === DTOs ===

// BookListOutput wraps a list of catalogue books for Huma.
type BookListOutput struct {
	Body []*domain.CatalogBook
}

// BookOutput wraps a catalogue book for Huma.
type BookOutput struct {
	Body domain.CatalogBook
}

// BookIDInput identifies a catalogue book by path.
type BookIDInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

// SearchBooksInput contains parameters for catalogue search.
type SearchBooksInput struct {
	Query        string `query:"q" doc:"Search words"`
	Limit        int    `query:"limit" minimum:"0" maximum:"100" doc:"Maximum hits (default 20)"`
	PublicDomain bool   `query:"publicDomain" doc:"Only public-domain books"`
}

// GenreFacetResponse counts search hits per genre.
type GenreFacetResponse struct {
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// SearchBooksResponse contains ranked catalogue matches.
type SearchBooksResponse struct {
	Query  string                `json:"query"`
	Total  uint64                `json:"total"`
	TookMs int64                 `json:"tookMs"`
	Books  []*domain.CatalogBook `json:"books"`
	Genres []GenreFacetResponse  `json:"genres"`
}

// SearchBooksOutput wraps the search response for Huma.
type SearchBooksOutput struct {
	Body SearchBooksResponse
}

// AddBookRequest is the request body for adding a catalogue book.
type AddBookRequest struct {
	Title          string `json:"title" doc:"Book title"`
	Author         string `json:"author" doc:"Book author"`
	Genre          string `json:"genre,omitempty"`
	Year           int    `json:"year,omitempty"`
	IsRead         bool   `json:"isRead,omitempty"`
	IsPublicDomain bool   `json:"isPublicDomain,omitempty"`
}

// AddBookInput wraps the add book request for Huma.
type AddBookInput struct {
	Body AddBookRequest
}

// UpdateBookInput contains parameters for changing a book's read flag.
type UpdateBookInput struct {
	ID   int64 `path:"id" doc:"Book ID"`
	Body struct {
		IsRead bool `json:"isRead"`
	}
}

// DownloadBookInput contains parameters for a download.
type DownloadBookInput struct {
	ID       int64 `path:"id" doc:"Book ID"`
	MemberID int64 `query:"memberId" minimum:"0" doc:"Optional downloading member"`
}

// DownloadBookOutput is a text/plain attachment.
type DownloadBookOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// StatisticsOutput wraps catalogue statistics for Huma.
type StatisticsOutput struct {
	Body domain.Statistics
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*BookListOutput, error) {
	books, err := s.services.Catalog.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: books}, nil
}

func (s *Server) handleListPublicDomainBooks(ctx context.Context, _ *struct{}) (*BookListOutput, error) {
	books, err := s.services.Catalog.ListPublicDomain(ctx)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: books}, nil
}

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*SearchBooksOutput, error) {
	res, err := s.services.Catalog.Search(ctx, input.Query, input.Limit, input.PublicDomain)
	if err != nil {
		return nil, err
	}

	genres := make([]GenreFacetResponse, len(res.Genres))
	for i, g := range res.Genres {
		genres[i] = GenreFacetResponse{Slug: g.Slug, Count: g.Count}
	}

	return &SearchBooksOutput{Body: SearchBooksResponse{
		Query:  res.Query,
		Total:  res.Total,
		TookMs: res.TookMs,
		Books:  res.Books,
		Genres: genres,
	}}, nil
}

func (s *Server) handleAddBook(ctx context.Context, input *AddBookInput) (*BookOutput, error) {
	book, err := s.services.Catalog.AddBook(ctx, service.AddBookRequest{
		Title:          input.Body.Title,
		Author:         input.Body.Author,
		Genre:          input.Body.Genre,
		Year:           input.Body.Year,
		IsRead:         input.Body.IsRead,
		IsPublicDomain: input.Body.IsPublicDomain,
	})
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	book, err := s.services.Catalog.SetRead(ctx, input.ID, input.Body.IsRead)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*struct{}, error) {
	if err := s.services.Catalog.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleDownloadBook(ctx context.Context, input *DownloadBookInput) (*DownloadBookOutput, error) {
	var memberID *int64
	if input.MemberID > 0 {
		memberID = &input.MemberID
	}

	file, err := s.services.Catalog.Download(ctx, input.ID, memberID)
	if err != nil {
		return nil, err
	}

	return &DownloadBookOutput{
		ContentType:        file.ContentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", file.Filename),
		Body:               file.Content,
	}, nil
}

func (s *Server) handleGetStatistics(ctx context.Context, _ *struct{}) (*StatisticsOutput, error) {
	stats, err := s.services.Catalog.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	return &StatisticsOutput{Body: *stats}, nil
}
