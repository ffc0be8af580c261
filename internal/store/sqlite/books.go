package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// bookColumns must match the scan order in scanBook.
const bookColumns = `id, title, author, genre, year, is_read, is_public_domain, download_count, created_at`

func scanBook(row scanner) (*domain.CatalogBook, error) {
	var (
		b         domain.CatalogBook
		genre     sql.NullString
		year      sql.NullInt64
		createdAt string
	)

	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&genre,
		&year,
		&b.IsRead,
		&b.IsPublicDomain,
		&b.DownloadCount,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.Genre = genre.String
	b.Year = int(year.Int64)
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse book created_at: %w", err)
	}
	return &b, nil
}

// CreateBook inserts a catalogue book, sets its ID and indexes it for search.
func (s *Store) CreateBook(ctx context.Context, b *domain.CatalogBook) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO books (title, author, genre, year, is_read, is_public_domain, download_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		b.Title,
		b.Author,
		nullString(b.Genre),
		nullInt(b.Year),
		boolToInt(b.IsRead),
		boolToInt(b.IsPublicDomain),
		formatTime(b.CreatedAt),
	)
	if err != nil {
		return mapConstraintError(err)
	}

	b.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}
	b.DownloadCount = 0

	if err := s.catalogIndexer().IndexBook(ctx, b); err != nil {
		s.logger.Warn("failed to index catalogue book", "book_id", b.ID, "error", err)
	}
	return nil
}

// GetBook retrieves a catalogue book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.CatalogBook, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// ListBooks returns the whole catalogue, newest first.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.CatalogBook, error) {
	return s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at DESC, id DESC`)
}

// ListPublicDomainBooks returns the downloadable books ordered by title.
func (s *Store) ListPublicDomainBooks(ctx context.Context) ([]*domain.CatalogBook, error) {
	return s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE is_public_domain = 1 ORDER BY title COLLATE NOCASE, id`)
}

func (s *Store) queryBooks(ctx context.Context, query string, args ...any) ([]*domain.CatalogBook, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*domain.CatalogBook{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// SetBookRead updates the read flag of a catalogue book and returns it.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) SetBookRead(ctx context.Context, id int64, read bool) (*domain.CatalogBook, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE books SET is_read = ? WHERE id = ?`, boolToInt(read), id)
	if err != nil {
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetBook(ctx, id)
}

// DeleteBook removes a catalogue book and its download records.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	if err := s.catalogIndexer().DeleteBook(ctx, id); err != nil {
		s.logger.Warn("failed to remove catalogue book from index", "book_id", id, "error", err)
	}
	return nil
}

// CountBooks returns the number of catalogue books.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

// RecordDownload inserts the download and increments the book's download
// counter in one transaction.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) RecordDownload(ctx context.Context, d *domain.Download) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE books SET download_count = download_count + 1 WHERE id = ?`, d.BookID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO downloads (id, book_id, member_id, downloaded_at)
		VALUES (?, ?, ?, ?)`,
		d.ID,
		d.BookID,
		nullInt64Ptr(d.MemberID),
		formatTime(d.DownloadedAt),
	)
	if err != nil {
		return mapConstraintError(err)
	}

	return tx.Commit()
}

// GetStatistics aggregates catalogue size and downloads.
func (s *Store) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	var st domain.Statistics
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(is_public_domain), 0),
			COALESCE(SUM(download_count), 0)
		FROM books`,
	).Scan(&st.TotalBooks, &st.PublicDomainBooks, &st.TotalDownloads)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
