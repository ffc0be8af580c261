package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/id"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// maxTokenAttempts bounds how many fresh tokens Share tries after a collision.
const maxTokenAttempts = 3

// ShareRequest describes a request to publish a personal entry.
type ShareRequest struct {
	EntryID        int64
	ActingMemberID int64
	IsPublic       bool
	AllowDownloads bool
	ExpiresAt      *time.Time
}

// ShareResult identifies a newly created share.
type ShareResult struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

// SharingService publishes entries and resolves share links.
type SharingService struct {
	store    store.Store
	logger   *slog.Logger
	newToken func() (string, error)
	now      func() time.Time
}

// NewSharingService creates a new sharing service.
func NewSharingService(store store.Store, logger *slog.Logger) *SharingService {
	return &SharingService{
		store:    store,
		logger:   logger,
		newToken: id.ShareToken,
		now:      time.Now,
	}
}

// Share publishes an entry owned by the acting member.
// An entry is shared at most once; there is no unshare.
func (s *SharingService) Share(ctx context.Context, req ShareRequest) (*ShareResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		return nil, domainerrors.InvalidArgument("expiresAt must be in the future")
	}

	entry, err := s.store.GetEntry(ctx, req.EntryID)
	if err != nil {
		return nil, fromStore(err, "book entry not found")
	}
	if !entry.OwnedBy(req.ActingMemberID) {
		return nil, domainerrors.Unauthorized("only the owner can share this entry")
	}
	if entry.IsShared {
		return nil, domainerrors.Conflict("entry already shared")
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t := req.ExpiresAt.UTC()
		expiresAt = &t
	}

	share := &domain.ShareRecord{
		EntryID:        entry.ID,
		SharerID:       entry.MemberID,
		IsPublic:       req.IsPublic,
		AllowDownloads: req.AllowDownloads,
		ExpiresAt:      expiresAt,
		CreatedAt:      now,
	}

	for attempt := 1; ; attempt++ {
		share.Token, err = s.newToken()
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate share token")
		}

		err = s.store.CreateShare(ctx, share)
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrTokenTaken) {
			s.logger.Warn("share token collision",
				"entry_id", entry.ID,
				"attempt", attempt,
			)
			if attempt >= maxTokenAttempts {
				return nil, domainerrors.Internal("could not allocate a unique share token")
			}
			continue
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("entry already shared")
		}
		return nil, fromStore(err, "book entry not found")
	}

	s.logger.Info("share created",
		"share_id", share.ID,
		"entry_id", share.EntryID,
		"sharer_id", share.SharerID,
		"is_public", share.IsPublic,
	)

	return &ShareResult{ID: share.ID, Token: share.Token}, nil
}

// GetByToken resolves a share link. The token itself grants access, so
// private shares resolve too; expired ones do not.
func (s *SharingService) GetByToken(ctx context.Context, token string) (*domain.ShareView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, domainerrors.InvalidArgument("share token is required")
	}

	share, err := s.store.GetShareByToken(ctx, token)
	if err != nil {
		return nil, fromStore(err, "share not found")
	}
	if share.IsExpired(s.now()) {
		return nil, domainerrors.NotFound("share link has expired")
	}

	entry, err := s.store.GetEntry(ctx, share.EntryID)
	if err != nil {
		return nil, fromStore(err, "book entry not found")
	}
	sharer, err := s.store.GetMember(ctx, share.SharerID)
	if err != nil {
		return nil, fromStore(err, "member not found")
	}

	return &domain.ShareView{
		Share:  *share,
		Entry:  *entry,
		Sharer: sharer.Summary(),
	}, nil
}
