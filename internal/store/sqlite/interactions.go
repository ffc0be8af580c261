package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

// ToggleLike removes the member's like on the share if one exists, otherwise adds it.
//
// The insert ignores conflicts: if a concurrent request added the like between
// the delete and the insert, the partial unique index rejects the duplicate and
// the toggle still reports liked=true.
//
// Returns store.ErrInvalidReference if the member or share does not exist.
func (s *Store) ToggleLike(ctx context.Context, shareID, memberID int64, at time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	removed, err := tx.ExecContext(ctx, `
		DELETE FROM interactions
		WHERE member_id = ? AND share_id = ? AND kind = 'like'`,
		memberID, shareID)
	if err != nil {
		return false, err
	}
	n, err := removed.RowsAffected()
	if err != nil {
		return false, err
	}

	liked := n == 0
	if liked {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO interactions (member_id, share_id, kind, text, created_at)
			VALUES (?, ?, 'like', NULL, ?)
			ON CONFLICT DO NOTHING`,
			memberID, shareID, formatTime(at))
		if err != nil {
			return false, mapConstraintError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return liked, nil
}

// CreateComment inserts a comment interaction and sets its ID.
// Returns store.ErrInvalidReference if the member or share does not exist
// and store.ErrInvalidInput if the text is empty.
func (s *Store) CreateComment(ctx context.Context, c *domain.Interaction) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO interactions (member_id, share_id, kind, text, created_at)
		VALUES (?, ?, 'comment', ?, ?)`,
		c.MemberID,
		c.ShareID,
		c.Text,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return mapConstraintError(err)
	}

	c.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}
	c.Kind = domain.InteractionComment
	return nil
}

// ListComments returns the comments on a share with their authors, oldest first.
func (s *Store) ListComments(ctx context.Context, shareID int64) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, m.id, m.username, m.display_name, m.avatar_url, i.text, i.created_at
		FROM interactions i
		JOIN members m ON m.id = i.member_id
		WHERE i.share_id = ? AND i.kind = 'comment'
		ORDER BY i.created_at ASC, i.id ASC`, shareID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		var (
			c         domain.Comment
			avatarURL sql.NullString
			createdAt string
		)
		if err := rows.Scan(
			&c.ID,
			&c.MemberID,
			&c.Username,
			&c.DisplayName,
			&avatarURL,
			&c.Text,
			&createdAt,
		); err != nil {
			return nil, err
		}
		c.AvatarURL = avatarURL.String
		c.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse comment created_at: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// CountInteractions counts interactions of one kind on a share.
func (s *Store) CountInteractions(ctx context.Context, shareID int64, kind domain.InteractionKind) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM interactions WHERE share_id = ? AND kind = ?`,
		shareID, string(kind)).Scan(&n)
	return n, err
}
