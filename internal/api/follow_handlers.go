package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

func (s *Server) registerFollowRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "follow",
		Method:      http.MethodPost,
		Path:        "/follows",
		Summary:     "Follow a member",
		Description: "Creates a follow edge. Following twice succeeds and reports alreadyFollowing.",
		Tags:        []string{"Follows"},
	}, s.handleFollow)

	huma.Register(s.api, huma.Operation{
		OperationID: "unfollow",
		Method:      http.MethodDelete,
		Path:        "/follows",
		Summary:     "Unfollow a member",
		Description: "Removes a follow edge if present",
		Tags:        []string{"Follows"},
	}, s.handleUnfollow)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFollowers",
		Method:      http.MethodGet,
		Path:        "/members/{id}/followers",
		Summary:     "List followers",
		Tags:        []string{"Follows"},
	}, s.handleListFollowers)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFollowing",
		Method:      http.MethodGet,
		Path:        "/members/{id}/following",
		Summary:     "List followed members",
		Tags:        []string{"Follows"},
	}, s.handleListFollowing)
}

// === DTOs ===

// FollowRequest names both ends of a follow edge.
type FollowRequest struct {
	FollowerID int64 `json:"followerId" minimum:"1" doc:"Member who follows"`
	FolloweeID int64 `json:"followeeId" minimum:"1" doc:"Member being followed"`
}

// FollowInput wraps a follow request for Huma.
type FollowInput struct {
	Body FollowRequest
}

// FollowResponse reports the result of a follow.
type FollowResponse struct {
	Following        bool   `json:"following"`
	AlreadyFollowing bool   `json:"alreadyFollowing"`
	Message          string `json:"message"`
}

// FollowOutput wraps the follow response for Huma.
type FollowOutput struct {
	Body FollowResponse
}

// UnfollowResponse reports the result of an unfollow.
type UnfollowResponse struct {
	Following bool `json:"following"`
	Removed   bool `json:"removed"`
}

// UnfollowOutput wraps the unfollow response for Huma.
type UnfollowOutput struct {
	Body UnfollowResponse
}

// MemberIDInput identifies a member by path.
type MemberIDInput struct {
	ID int64 `path:"id" doc:"Member ID"`
}

// MemberListOutput wraps a list of member summaries for Huma.
type MemberListOutput struct {
	Body []domain.MemberSummary
}

// === Handlers ===

func (s *Server) handleFollow(ctx context.Context, input *FollowInput) (*FollowOutput, error) {
	already, err := s.services.Follows.Follow(ctx, input.Body.FollowerID, input.Body.FolloweeID)
	if err != nil {
		return nil, err
	}

	msg := "now following"
	if already {
		msg = "already following"
	}
	return &FollowOutput{Body: FollowResponse{Following: true, AlreadyFollowing: already, Message: msg}}, nil
}

func (s *Server) handleUnfollow(ctx context.Context, input *FollowInput) (*UnfollowOutput, error) {
	removed, err := s.services.Follows.Unfollow(ctx, input.Body.FollowerID, input.Body.FolloweeID)
	if err != nil {
		return nil, err
	}
	return &UnfollowOutput{Body: UnfollowResponse{Following: false, Removed: removed}}, nil
}

func (s *Server) handleListFollowers(ctx context.Context, input *MemberIDInput) (*MemberListOutput, error) {
	members, err := s.services.Follows.ListFollowers(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &MemberListOutput{Body: members}, nil
}

func (s *Server) handleListFollowing(ctx context.Context, input *MemberIDInput) (*MemberListOutput, error) {
	members, err := s.services.Follows.ListFollowing(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &MemberListOutput{Body: members}, nil
}
