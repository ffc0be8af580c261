package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

func (s *Server) registerShareRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createShare",
		Method:        http.MethodPost,
		Path:          "/shares",
		Summary:       "Share an entry",
		Description:   "Publishes a personal entry. An entry can be shared once and only by its owner.",
		Tags:          []string{"Shares"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateShare)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShareByToken",
		Method:      http.MethodGet,
		Path:        "/shares/token/{token}",
		Summary:     "Resolve share link",
		Description: "Returns the share, its entry and the sharer for a share token",
		Tags:        []string{"Shares"},
	}, s.handleGetShareByToken)
}

// === DTOs ===

// CreateShareRequest is the request body for sharing an entry.
type CreateShareRequest struct {
	EntryID        int64      `json:"entryId" minimum:"1" doc:"Entry to share"`
	ActingMemberID int64      `json:"actingMemberId" minimum:"1" doc:"Member performing the share; must own the entry"`
	IsPublic       *bool      `json:"isPublic,omitempty" doc:"Show the share in the community feed (default true)"`
	AllowDownloads bool       `json:"allowDownloads,omitempty" doc:"Allow downloads of public-domain entries"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty" doc:"Optional expiry of the share link"`
}

// CreateShareInput wraps the create share request for Huma.
type CreateShareInput struct {
	Body CreateShareRequest
}

// CreateShareOutput wraps the created share for Huma.
type CreateShareOutput struct {
	Body service.ShareResult
}

// GetShareByTokenInput contains parameters for resolving a share link.
type GetShareByTokenInput struct {
	Token string `path:"token" doc:"Share token"`
}

// ShareViewOutput wraps a resolved share for Huma.
type ShareViewOutput struct {
	Body domain.ShareView
}

// === Handlers ===

func (s *Server) handleCreateShare(ctx context.Context, input *CreateShareInput) (*CreateShareOutput, error) {
	isPublic := true
	if input.Body.IsPublic != nil {
		isPublic = *input.Body.IsPublic
	}

	res, err := s.services.Sharing.Share(ctx, service.ShareRequest{
		EntryID:        input.Body.EntryID,
		ActingMemberID: input.Body.ActingMemberID,
		IsPublic:       isPublic,
		AllowDownloads: input.Body.AllowDownloads,
		ExpiresAt:      input.Body.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	return &CreateShareOutput{Body: *res}, nil
}

func (s *Server) handleGetShareByToken(ctx context.Context, input *GetShareByTokenInput) (*ShareViewOutput, error) {
	view, err := s.services.Sharing.GetByToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}
	return &ShareViewOutput{Body: *view}, nil
}
