package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

// CreateFollow inserts a follow edge, ignoring an existing one.
// Reports whether a new edge was created.
// Returns store.ErrInvalidReference if either member does not exist.
func (s *Store) CreateFollow(ctx context.Context, edge *domain.FollowEdge) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		edge.FollowerID,
		edge.FolloweeID,
		formatTime(edge.CreatedAt),
	)
	if err != nil {
		return false, mapConstraintError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteFollow removes a follow edge. Reports whether an edge was removed.
func (s *Store) DeleteFollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID)
	if err != nil {
		return false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListFollowers returns the members following memberID, most recent first.
func (s *Store) ListFollowers(ctx context.Context, memberID int64) ([]domain.MemberSummary, error) {
	return s.listFollowMembers(ctx, `
		SELECT m.id, m.username, m.display_name, m.avatar_url
		FROM follows f
		JOIN members m ON m.id = f.follower_id
		WHERE f.followee_id = ?
		ORDER BY f.created_at DESC, m.id DESC`, memberID)
}

// ListFollowing returns the members memberID follows, most recent first.
func (s *Store) ListFollowing(ctx context.Context, memberID int64) ([]domain.MemberSummary, error) {
	return s.listFollowMembers(ctx, `
		SELECT m.id, m.username, m.display_name, m.avatar_url
		FROM follows f
		JOIN members m ON m.id = f.followee_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at DESC, m.id DESC`, memberID)
}

func (s *Store) listFollowMembers(ctx context.Context, query string, memberID int64) ([]domain.MemberSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.MemberSummary{}
	for rows.Next() {
		var (
			m         domain.MemberSummary
			avatarURL sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Username, &m.DisplayName, &avatarURL); err != nil {
			return nil, err
		}
		m.AvatarURL = avatarURL.String
		members = append(members, m)
	}
	return members, rows.Err()
}
