package service

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// InteractionService records likes and comments on shares.
type InteractionService struct {
	store  store.Store
	logger *slog.Logger
}

// NewInteractionService creates a new interaction service.
func NewInteractionService(store store.Store, logger *slog.Logger) *InteractionService {
	return &InteractionService{
		store:  store,
		logger: logger,
	}
}

// ToggleLike flips the member's like on a share and reports the new state.
func (s *InteractionService) ToggleLike(ctx context.Context, shareID, memberID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := s.requireShareAndMember(ctx, shareID, memberID); err != nil {
		return false, err
	}

	liked, err := s.store.ToggleLike(ctx, shareID, memberID, time.Now().UTC())
	if err != nil {
		return false, fromStore(err, "share not found")
	}

	s.logger.Info("like toggled",
		"share_id", shareID,
		"member_id", memberID,
		"liked", liked,
	)
	return liked, nil
}

// AddComment stores a trimmed, non-empty comment and returns its id.
func (s *InteractionService) AddComment(ctx context.Context, shareID, memberID int64, text string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return 0, domainerrors.InvalidArgument("comment text is required")
	}
	if utf8.RuneCountInString(text) > domain.MaxCommentLength {
		return 0, domainerrors.InvalidArgumentf("comment text must be at most %d characters", domain.MaxCommentLength)
	}

	if err := s.requireShareAndMember(ctx, shareID, memberID); err != nil {
		return 0, err
	}

	comment := &domain.Interaction{
		MemberID:  memberID,
		ShareID:   shareID,
		Kind:      domain.InteractionComment,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return 0, fromStore(err, "share not found")
	}

	s.logger.Info("comment added",
		"comment_id", comment.ID,
		"share_id", shareID,
		"member_id", memberID,
	)
	return comment.ID, nil
}

// ListComments returns a share's comments, oldest first.
func (s *InteractionService) ListComments(ctx context.Context, shareID int64) ([]*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.store.GetShare(ctx, shareID); err != nil {
		return nil, fromStore(err, "share not found")
	}

	comments, err := s.store.ListComments(ctx, shareID)
	if err != nil {
		return nil, fromStore(err, "share not found")
	}
	return comments, nil
}

func (s *InteractionService) requireShareAndMember(ctx context.Context, shareID, memberID int64) error {
	if _, err := s.store.GetShare(ctx, shareID); err != nil {
		return fromStore(err, "share not found")
	}
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return fromStore(err, "member not found")
	}
	return nil
}
