package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// shareColumns must match the scan order in scanShare.
const shareColumns = `id, entry_id, sharer_id, is_public, allow_downloads, token, expires_at, created_at`

func scanShare(row scanner) (*domain.ShareRecord, error) {
	var (
		sh        domain.ShareRecord
		expiresAt sql.NullString
		createdAt string
	)

	err := row.Scan(
		&sh.ID,
		&sh.EntryID,
		&sh.SharerID,
		&sh.IsPublic,
		&sh.AllowDownloads,
		&sh.Token,
		&expiresAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	sh.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse share created_at: %w", err)
	}
	sh.ExpiresAt, err = parseNullableTime(expiresAt)
	if err != nil {
		return nil, fmt.Errorf("parse share expires_at: %w", err)
	}
	return &sh, nil
}

// CreateShare inserts the share and flags its entry as shared in one transaction,
// so either both writes land or neither does.
//
// Returns store.ErrAlreadyExists if the entry is already shared and
// store.ErrTokenTaken if the token collides with another share.
func (s *Store) CreateShare(ctx context.Context, sh *domain.ShareRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO shares (entry_id, sharer_id, is_public, allow_downloads, token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sh.EntryID,
		sh.SharerID,
		boolToInt(sh.IsPublic),
		boolToInt(sh.AllowDownloads),
		sh.Token,
		nullTimeString(sh.ExpiresAt),
		formatTime(sh.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: shares.token") {
			return store.ErrTokenTaken
		}
		return mapConstraintError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	flagged, err := tx.ExecContext(ctx,
		`UPDATE book_entries SET is_shared = 1 WHERE id = ?`, sh.EntryID)
	if err != nil {
		return fmt.Errorf("flag entry shared: %w", err)
	}
	n, err := flagged.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrInvalidReference
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	sh.ID = id
	return nil
}

// GetShare retrieves a share by ID.
// Returns store.ErrNotFound if the share does not exist.
func (s *Store) GetShare(ctx context.Context, id int64) (*domain.ShareRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE id = ?`, id)

	sh, err := scanShare(row)
	if err != nil {
		return nil, notFound(err)
	}
	return sh, nil
}

// GetShareByEntry retrieves the share of an entry.
// Returns store.ErrNotFound if the entry has not been shared.
func (s *Store) GetShareByEntry(ctx context.Context, entryID int64) (*domain.ShareRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE entry_id = ?`, entryID)

	sh, err := scanShare(row)
	if err != nil {
		return nil, notFound(err)
	}
	return sh, nil
}

// GetShareByToken retrieves a share by its public token.
// Returns store.ErrNotFound if no share carries the token.
func (s *Store) GetShareByToken(ctx context.Context, token string) (*domain.ShareRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE token = ?`, token)

	sh, err := scanShare(row)
	if err != nil {
		return nil, notFound(err)
	}
	return sh, nil
}
