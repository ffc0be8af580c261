package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/store"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// AddEntryRequest describes a book a member adds to their collection.
type AddEntryRequest struct {
	MemberID       int64  `json:"memberId" validate:"gt=0"`
	Title          string `json:"title" validate:"required,max=500"`
	Author         string `json:"author" validate:"required,max=500"`
	Genre          string `json:"genre" validate:"max=100"`
	Year           int    `json:"year" validate:"gte=0,lte=9999"`
	IsPublicDomain bool   `json:"isPublicDomain"`
	Notes          string `json:"notes" validate:"max=10000"`
	Rating         int    `json:"rating" validate:"gte=0,lte=5"`
}

// UpdateEntryRequest changes the mutable fields of an entry.
type UpdateEntryRequest struct {
	ActingMemberID int64   `json:"actingMemberId" validate:"gt=0"`
	IsRead         *bool   `json:"isRead"`
	Notes          *string `json:"notes" validate:"omitempty,max=10000"`
	Rating         *int    `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// LibraryService manages members' personal book entries.
type LibraryService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(store store.Store, validator *validation.Validator, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// AddEntry adds a private entry to a member's collection.
func (s *LibraryService) AddEntry(ctx context.Context, req AddEntryRequest) (*domain.BookEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.Genre = strings.TrimSpace(req.Genre)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetMember(ctx, req.MemberID); err != nil {
		return nil, fromStore(err, "member not found")
	}

	entry := &domain.BookEntry{
		MemberID:       req.MemberID,
		Title:          req.Title,
		Author:         req.Author,
		Genre:          req.Genre,
		Year:           req.Year,
		IsPublicDomain: req.IsPublicDomain,
		Notes:          req.Notes,
		Rating:         req.Rating,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, fromStore(err, "member not found")
	}

	s.logger.Info("entry added",
		"entry_id", entry.ID,
		"member_id", entry.MemberID,
		"title", entry.Title,
	)
	return entry, nil
}

// ListEntries returns a member's entries, newest first.
func (s *LibraryService) ListEntries(ctx context.Context, memberID int64) ([]*domain.BookEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return nil, fromStore(err, "member not found")
	}

	entries, err := s.store.ListMemberEntries(ctx, memberID)
	if err != nil {
		return nil, fromStore(err, "member not found")
	}
	return entries, nil
}

// UpdateEntry applies a partial update. Only the owner may change an entry.
func (s *LibraryService) UpdateEntry(ctx context.Context, entryID int64, req UpdateEntryRequest) (*domain.BookEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, fromStore(err, "book entry not found")
	}
	if !entry.OwnedBy(req.ActingMemberID) {
		return nil, domainerrors.Unauthorized("only the owner can update this entry")
	}

	if req.IsRead == nil && req.Notes == nil && req.Rating == nil {
		return entry, nil
	}

	updated, err := s.store.UpdateEntry(ctx, entryID, domain.EntryUpdate{
		IsRead: req.IsRead,
		Notes:  req.Notes,
		Rating: req.Rating,
	})
	if err != nil {
		return nil, fromStore(err, "book entry not found")
	}

	s.logger.Info("entry updated",
		"entry_id", entryID,
		"member_id", req.ActingMemberID,
	)
	return updated, nil
}
