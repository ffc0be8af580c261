package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

func (s *Server) registerMemberRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "registerMember",
		Method:        http.MethodPost,
		Path:          "/members",
		Summary:       "Register member",
		Description:   "Creates a member. Usernames and emails are unique.",
		Tags:          []string{"Members"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegisterMember)
}

// === DTOs ===

// RegisterMemberRequest is the request body for registration.
type RegisterMemberRequest struct {
	Username    string `json:"username" doc:"Unique username, 3 to 32 characters"`
	Email       string `json:"email" doc:"Unique email address"`
	Password    string `json:"password" doc:"At least 8 characters"`
	DisplayName string `json:"displayName,omitempty" doc:"Shown instead of the username"`
	AvatarURL   string `json:"avatarUrl,omitempty" doc:"Avatar image URL"`
}

// RegisterMemberInput wraps the registration request for Huma.
type RegisterMemberInput struct {
	Body RegisterMemberRequest
}

// MemberOutput wraps a member for Huma.
type MemberOutput struct {
	Body domain.Member
}

// === Handlers ===

func (s *Server) handleRegisterMember(ctx context.Context, input *RegisterMemberInput) (*MemberOutput, error) {
	member, err := s.services.Members.Register(ctx, service.RegisterRequest{
		Username:    input.Body.Username,
		Email:       input.Body.Email,
		Password:    input.Body.Password,
		DisplayName: input.Body.DisplayName,
		AvatarURL:   input.Body.AvatarURL,
	})
	if err != nil {
		return nil, err
	}
	return &MemberOutput{Body: *member}, nil
}
