package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

// memberColumns must match the scan order in scanMember.
const memberColumns = `id, username, email, display_name, avatar_url, password_hash, created_at`

func scanMember(row scanner) (*domain.Member, error) {
	var (
		m         domain.Member
		avatarURL sql.NullString
		createdAt string
	)

	err := row.Scan(
		&m.ID,
		&m.Username,
		&m.Email,
		&m.DisplayName,
		&avatarURL,
		&m.PasswordHash,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	m.AvatarURL = avatarURL.String
	m.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse member created_at: %w", err)
	}
	return &m, nil
}

// CreateMember inserts a member and sets its ID.
// Returns store.ErrAlreadyExists when the username or email is taken.
func (s *Store) CreateMember(ctx context.Context, m *domain.Member) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO members (username, email, display_name, avatar_url, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Username,
		m.Email,
		m.Name(),
		nullString(m.AvatarURL),
		m.PasswordHash,
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return mapConstraintError(err)
	}

	m.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}
	m.DisplayName = m.Name()
	return nil
}

// GetMember retrieves a member by ID.
// Returns store.ErrNotFound if the member does not exist.
func (s *Store) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = ?`, id)

	m, err := scanMember(row)
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// GetProfile returns the member's identity with follower, following, book and share counts.
// Returns store.ErrNotFound if the member does not exist.
func (s *Store) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	var (
		p         domain.Profile
		avatarURL sql.NullString
		createdAt string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT
			m.id, m.username, m.display_name, m.avatar_url, m.created_at,
			(SELECT COUNT(*) FROM follows WHERE followee_id = m.id),
			(SELECT COUNT(*) FROM follows WHERE follower_id = m.id),
			(SELECT COUNT(*) FROM book_entries WHERE member_id = m.id),
			(SELECT COUNT(*) FROM shares sh
				JOIN book_entries be ON be.id = sh.entry_id
				WHERE be.member_id = m.id)
		FROM members m
		WHERE m.id = ?`, id,
	).Scan(
		&p.ID,
		&p.Username,
		&p.DisplayName,
		&avatarURL,
		&createdAt,
		&p.FollowerCount,
		&p.FollowingCount,
		&p.BookCount,
		&p.SharedCount,
	)
	if err != nil {
		return nil, notFound(err)
	}

	p.AvatarURL = avatarURL.String
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse member created_at: %w", err)
	}
	return &p, nil
}
