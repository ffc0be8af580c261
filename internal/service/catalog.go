package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/id"
	"github.com/bookcircle/bookcircle-server/internal/search"
	"github.com/bookcircle/bookcircle-server/internal/store"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// CatalogSearcher is the full-text index behind catalogue search.
type CatalogSearcher interface {
	Search(ctx context.Context, params search.Params) (*search.Result, error)
	Rebuild(ctx context.Context, books []domain.CatalogBook) error
}

// AddBookRequest describes a catalogue book.
type AddBookRequest struct {
	Title          string `json:"title" validate:"required,max=500"`
	Author         string `json:"author" validate:"required,max=500"`
	Genre          string `json:"genre" validate:"max=100"`
	Year           int    `json:"year" validate:"gte=0,lte=9999"`
	IsRead         bool   `json:"isRead"`
	IsPublicDomain bool   `json:"isPublicDomain"`
}

// SearchResult is a ranked catalogue search.
type SearchResult struct {
	Query  string                `json:"query"`
	Total  uint64                `json:"total"`
	TookMs int64                 `json:"tookMs"`
	Books  []*domain.CatalogBook `json:"books"`
	Genres []search.GenreFacet   `json:"-"`
}

// DownloadFile is the simulated content of a downloaded book.
type DownloadFile struct {
	DownloadID  string
	Filename    string
	ContentType string
	Content     []byte
}

// sampleBooks seed an empty catalogue.
var sampleBooks = []AddBookRequest{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: "Fiction", Year: 1925, IsRead: true},
	{Title: "To Kill a Mockingbird", Author: "Harper Lee", Genre: "Fiction", Year: 1960},
	{Title: "1984", Author: "George Orwell", Genre: "Science Fiction", Year: 1949, IsRead: true},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Romance", Year: 1813, IsPublicDomain: true},
	{Title: "Moby Dick", Author: "Herman Melville", Genre: "Adventure", Year: 1851, IsPublicDomain: true},
}

// CatalogService manages the shared book catalogue and its simulated downloads.
type CatalogService struct {
	store     store.Store
	index     CatalogSearcher
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store store.Store, index CatalogSearcher, validator *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     store,
		index:     index,
		validator: validator,
		logger:    logger,
	}
}

// AddBook adds a book to the catalogue.
func (s *CatalogService) AddBook(ctx context.Context, req AddBookRequest) (*domain.CatalogBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.Genre = strings.TrimSpace(req.Genre)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	book := &domain.CatalogBook{
		Title:          req.Title,
		Author:         req.Author,
		Genre:          req.Genre,
		Year:           req.Year,
		IsRead:         req.IsRead,
		IsPublicDomain: req.IsPublicDomain,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fromStore(err, "book not found")
	}

	s.logger.Info("book added",
		"book_id", book.ID,
		"title", book.Title,
		"public_domain", book.IsPublicDomain,
	)
	return book, nil
}

// ListBooks returns the catalogue, newest first.
func (s *CatalogService) ListBooks(ctx context.Context) ([]*domain.CatalogBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, fromStore(err, "book not found")
	}
	return books, nil
}

// ListPublicDomain returns the downloadable books ordered by title.
func (s *CatalogService) ListPublicDomain(ctx context.Context) ([]*domain.CatalogBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	books, err := s.store.ListPublicDomainBooks(ctx)
	if err != nil {
		return nil, fromStore(err, "book not found")
	}
	return books, nil
}

// SetRead marks a catalogue book read or unread.
func (s *CatalogService) SetRead(ctx context.Context, bookID int64, read bool) (*domain.CatalogBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	book, err := s.store.SetBookRead(ctx, bookID, read)
	if err != nil {
		return nil, fromStore(err, "book not found")
	}

	s.logger.Info("book read status changed", "book_id", bookID, "is_read", read)
	return book, nil
}

// DeleteBook removes a book from the catalogue.
func (s *CatalogService) DeleteBook(ctx context.Context, bookID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return fromStore(err, "book not found")
	}

	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}

// Search runs a full-text query over title, author and genre. Hits whose
// book has since been deleted are dropped.
func (s *CatalogService) Search(ctx context.Context, query string, limit int, publicDomainOnly bool) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.InvalidArgument("search query is required")
	}
	if s.index == nil {
		return nil, domainerrors.Internal("search is unavailable")
	}

	res, err := s.index.Search(ctx, search.Params{
		Query:            query,
		Limit:            limit,
		PublicDomainOnly: publicDomainOnly,
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}

	out := &SearchResult{
		Query:  query,
		Total:  res.Total,
		TookMs: res.TookMs,
		Books:  make([]*domain.CatalogBook, 0, len(res.Hits)),
		Genres: res.Genres,
	}
	for _, hit := range res.Hits {
		book, err := s.store.GetBook(ctx, hit.BookID)
		if err != nil {
			s.logger.Debug("search hit without book", "book_id", hit.BookID, "error", err)
			continue
		}
		out.Books = append(out.Books, book)
	}
	return out, nil
}

// RebuildIndex reloads the search index from the store.
func (s *CatalogService) RebuildIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}

	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}

	values := make([]domain.CatalogBook, len(books))
	for i, b := range books {
		values[i] = *b
	}
	return s.index.Rebuild(ctx, values)
}

// SeedSampleBooks fills an empty catalogue with the sample titles and
// returns how many were added.
func (s *CatalogService) SeedSampleBooks(ctx context.Context) (int, error) {
	count, err := s.store.CountBooks(ctx)
	if err != nil {
		return 0, fromStore(err, "book not found")
	}
	if count > 0 {
		return 0, nil
	}

	for _, req := range sampleBooks {
		if _, err := s.AddBook(ctx, req); err != nil {
			return 0, fmt.Errorf("seed %q: %w", req.Title, err)
		}
	}

	s.logger.Info("sample books seeded", "count", len(sampleBooks))
	return len(sampleBooks), nil
}

// Download records a download of a public-domain book and returns its
// simulated content. memberID is optional.
func (s *CatalogService) Download(ctx context.Context, bookID int64, memberID *int64) (*DownloadFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, fromStore(err, "book not available for download")
	}
	if !book.IsPublicDomain {
		return nil, domainerrors.NotFound("book not available for download")
	}
	if memberID != nil {
		if _, err := s.store.GetMember(ctx, *memberID); err != nil {
			return nil, fromStore(err, "member not found")
		}
	}

	download := &domain.Download{
		ID:           id.DownloadID(),
		BookID:       book.ID,
		MemberID:     memberID,
		DownloadedAt: time.Now().UTC(),
	}
	if err := s.store.RecordDownload(ctx, download); err != nil {
		return nil, fromStore(err, "book not available for download")
	}

	s.logger.Info("book downloaded",
		"download_id", download.ID,
		"book_id", book.ID,
	)

	return &DownloadFile{
		DownloadID:  download.ID,
		Filename:    downloadFilename(book.Title),
		ContentType: "text/plain; charset=utf-8",
		Content:     []byte(downloadContent(book)),
	}, nil
}

// Statistics returns catalogue totals.
func (s *CatalogService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats, err := s.store.GetStatistics(ctx)
	if err != nil {
		return nil, fromStore(err, "statistics not found")
	}
	return stats, nil
}

func downloadFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, title)
	return name + ".txt"
}

func downloadContent(b *domain.CatalogBook) string {
	year := "Unknown"
	if b.Year > 0 {
		year = strconv.Itoa(b.Year)
	}
	genre := b.Genre
	if genre == "" {
		genre = "Unknown"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", b.Title)
	fmt.Fprintf(&sb, "Author: %s\n", b.Author)
	fmt.Fprintf(&sb, "Year: %s\n", year)
	fmt.Fprintf(&sb, "Genre: %s\n", genre)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "This is a simulated download for \"%s\".\n", b.Title)
	sb.WriteString("In a real system, this would be the actual book content.\n")
	sb.WriteString("\n")
	sb.WriteString("Thank you for using our Public Domain Library!\n")
	return sb.String()
}
