package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/auth"
	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/store"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// RegisterRequest holds the fields needed to create a member.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=32"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=1024"`
	DisplayName string `json:"displayName" validate:"omitempty,max=64"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,url"`
}

// MemberService registers and looks up members.
type MemberService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
	hash      func(string) (string, error)
}

// NewMemberService creates a new member service.
func NewMemberService(store store.Store, validator *validation.Validator, logger *slog.Logger) *MemberService {
	return &MemberService{
		store:     store,
		validator: validator,
		logger:    logger,
		hash:      auth.HashPassword,
	}
}

// Register validates the request, hashes the password and stores the member.
func (s *MemberService) Register(ctx context.Context, req RegisterRequest) (*domain.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to hash password")
	}

	member := &domain.Member{
		Username:     req.Username,
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		AvatarURL:    req.AvatarURL,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("username or email already exists")
		}
		return nil, fromStore(err, "member not found")
	}

	s.logger.Info("member registered",
		"member_id", member.ID,
		"username", member.Username,
	)
	return member, nil
}

// Get returns a member by id.
func (s *MemberService) Get(ctx context.Context, memberID int64) (*domain.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, fromStore(err, "member not found")
	}
	return member, nil
}
