package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

// ListFeed returns public, unexpired shares with their entry, sharer and live
// like and comment counts, newest first.
func (s *Store) ListFeed(ctx context.Context, now time.Time, limit int) ([]*domain.FeedItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			sh.id, be.id, be.title, be.author, be.genre, be.year, be.is_public_domain,
			sh.allow_downloads, sh.created_at,
			m.id, m.username, m.display_name, m.avatar_url,
			(SELECT COUNT(*) FROM interactions i WHERE i.share_id = sh.id AND i.kind = 'like'),
			(SELECT COUNT(*) FROM interactions i WHERE i.share_id = sh.id AND i.kind = 'comment')
		FROM shares sh
		JOIN book_entries be ON be.id = sh.entry_id
		JOIN members m ON m.id = sh.sharer_id
		WHERE sh.is_public = 1
		  AND (sh.expires_at IS NULL OR sh.expires_at > ?)
		ORDER BY sh.created_at DESC, sh.id DESC
		LIMIT ?`, formatTime(now), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.FeedItem{}
	for rows.Next() {
		var (
			it        domain.FeedItem
			genre     sql.NullString
			year      sql.NullInt64
			avatarURL sql.NullString
			sharedAt  string
		)
		if err := rows.Scan(
			&it.ShareID,
			&it.EntryID,
			&it.Title,
			&it.Author,
			&genre,
			&year,
			&it.IsPublicDomain,
			&it.AllowDownloads,
			&sharedAt,
			&it.Sharer.ID,
			&it.Sharer.Username,
			&it.Sharer.DisplayName,
			&avatarURL,
			&it.LikeCount,
			&it.CommentCount,
		); err != nil {
			return nil, err
		}
		it.Genre = genre.String
		it.Year = int(year.Int64)
		it.Sharer.AvatarURL = avatarURL.String
		it.SharedAt, err = parseTime(sharedAt)
		if err != nil {
			return nil, fmt.Errorf("parse share created_at: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListSharedEntries returns entries with a genre whose share is public and
// unexpired at now, newest share first.
// Categories are derived from these by genre slug.
func (s *Store) ListSharedEntries(ctx context.Context, now time.Time) ([]*domain.CategoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			be.id, sh.id, be.title, be.author, be.genre, be.year, sh.created_at,
			m.id, m.username, m.display_name, m.avatar_url
		FROM shares sh
		JOIN book_entries be ON be.id = sh.entry_id
		JOIN members m ON m.id = sh.sharer_id
		WHERE be.is_shared = 1 AND be.genre IS NOT NULL AND be.genre <> ''
		  AND sh.is_public = 1
		  AND (sh.expires_at IS NULL OR sh.expires_at > ?)
		ORDER BY sh.created_at DESC, sh.id DESC`, formatTime(now))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.CategoryEntry{}
	for rows.Next() {
		var (
			e         domain.CategoryEntry
			year      sql.NullInt64
			avatarURL sql.NullString
			sharedAt  string
		)
		if err := rows.Scan(
			&e.EntryID,
			&e.ShareID,
			&e.Title,
			&e.Author,
			&e.Genre,
			&year,
			&sharedAt,
			&e.Sharer.ID,
			&e.Sharer.Username,
			&e.Sharer.DisplayName,
			&avatarURL,
		); err != nil {
			return nil, err
		}
		e.Year = int(year.Int64)
		e.Sharer.AvatarURL = avatarURL.String
		e.SharedAt, err = parseTime(sharedAt)
		if err != nil {
			return nil, fmt.Errorf("parse share created_at: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
