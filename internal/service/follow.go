package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// FollowService manages the directed follow graph between members.
type FollowService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFollowService creates a new follow service.
func NewFollowService(store store.Store, logger *slog.Logger) *FollowService {
	return &FollowService{
		store:  store,
		logger: logger,
	}
}

// Follow makes followerID follow followeeID. Following twice is not an error;
// the second call reports alreadyFollowing.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID int64) (alreadyFollowing bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if followerID == followeeID {
		return false, domainerrors.InvalidArgument("cannot follow yourself")
	}
	if err := s.requireMembers(ctx, followerID, followeeID); err != nil {
		return false, err
	}

	created, err := s.store.CreateFollow(ctx, &domain.FollowEdge{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return false, fromStore(err, "member not found")
	}

	if created {
		s.logger.Info("member followed",
			"follower_id", followerID,
			"followee_id", followeeID,
		)
	}
	return !created, nil
}

// Unfollow removes the edge if present and reports whether anything changed.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if followerID == followeeID {
		return false, domainerrors.InvalidArgument("cannot unfollow yourself")
	}
	if err := s.requireMembers(ctx, followerID, followeeID); err != nil {
		return false, err
	}

	removed, err := s.store.DeleteFollow(ctx, followerID, followeeID)
	if err != nil {
		return false, fromStore(err, "member not found")
	}

	if removed {
		s.logger.Info("member unfollowed",
			"follower_id", followerID,
			"followee_id", followeeID,
		)
	}
	return removed, nil
}

// ListFollowers returns the members following memberID, most recent first.
func (s *FollowService) ListFollowers(ctx context.Context, memberID int64) ([]domain.MemberSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return nil, fromStore(err, "member not found")
	}

	members, err := s.store.ListFollowers(ctx, memberID)
	if err != nil {
		return nil, fromStore(err, "member not found")
	}
	return members, nil
}

// ListFollowing returns the members memberID follows, most recent first.
func (s *FollowService) ListFollowing(ctx context.Context, memberID int64) ([]domain.MemberSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return nil, fromStore(err, "member not found")
	}

	members, err := s.store.ListFollowing(ctx, memberID)
	if err != nil {
		return nil, fromStore(err, "member not found")
	}
	return members, nil
}

func (s *FollowService) requireMembers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if _, err := s.store.GetMember(ctx, id); err != nil {
			return fromStore(err, "member not found")
		}
	}
	return nil
}
