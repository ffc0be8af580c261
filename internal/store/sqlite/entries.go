package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// entryColumns must match the scan order in scanEntry.
const entryColumns = `id, member_id, title, author, genre, year, is_public_domain,
	is_read, is_shared, notes, rating, created_at`

func scanEntry(row scanner) (*domain.BookEntry, error) {
	var (
		e         domain.BookEntry
		genre     sql.NullString
		year      sql.NullInt64
		notes     sql.NullString
		createdAt string
	)

	err := row.Scan(
		&e.ID,
		&e.MemberID,
		&e.Title,
		&e.Author,
		&genre,
		&year,
		&e.IsPublicDomain,
		&e.IsRead,
		&e.IsShared,
		&notes,
		&e.Rating,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.Genre = genre.String
	e.Year = int(year.Int64)
	e.Notes = notes.String
	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse entry created_at: %w", err)
	}
	return &e, nil
}

// CreateEntry inserts a personal entry and sets its ID. New entries are never shared.
// Returns store.ErrInvalidReference if the owner does not exist.
func (s *Store) CreateEntry(ctx context.Context, e *domain.BookEntry) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO book_entries (
			member_id, title, author, genre, year, is_public_domain,
			is_read, is_shared, notes, rating, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		e.MemberID,
		e.Title,
		e.Author,
		nullString(e.Genre),
		nullInt(e.Year),
		boolToInt(e.IsPublicDomain),
		boolToInt(e.IsRead),
		nullString(e.Notes),
		e.Rating,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return mapConstraintError(err)
	}

	e.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}
	e.IsShared = false
	return nil
}

// GetEntry retrieves an entry by ID.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) GetEntry(ctx context.Context, id int64) (*domain.BookEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM book_entries WHERE id = ?`, id)

	e, err := scanEntry(row)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// ListMemberEntries returns a member's entries, newest first.
func (s *Store) ListMemberEntries(ctx context.Context, memberID int64) ([]*domain.BookEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM book_entries
		WHERE member_id = ?
		ORDER BY created_at DESC, id DESC`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.BookEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateEntry applies the non-nil fields of update and returns the updated entry.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) UpdateEntry(ctx context.Context, id int64, update domain.EntryUpdate) (*domain.BookEntry, error) {
	var (
		sets []string
		args []any
	)
	if update.IsRead != nil {
		sets = append(sets, "is_read = ?")
		args = append(args, boolToInt(*update.IsRead))
	}
	if update.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, nullString(*update.Notes))
	}
	if update.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *update.Rating)
	}

	if len(sets) == 0 {
		return s.GetEntry(ctx, id)
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx,
		`UPDATE book_entries SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, mapConstraintError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetEntry(ctx, id)
}
