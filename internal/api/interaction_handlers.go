package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

func (s *Server) registerInteractionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleLike",
		Method:      http.MethodPost,
		Path:        "/shares/{id}/like",
		Summary:     "Toggle like",
		Description: "Likes the share, or removes the member's like if present",
		Tags:        []string{"Interactions"},
	}, s.handleToggleLike)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addComment",
		Method:        http.MethodPost,
		Path:          "/shares/{id}/comments",
		Summary:       "Add comment",
		Description:   "Adds a comment to a share",
		Tags:          []string{"Interactions"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "listComments",
		Method:      http.MethodGet,
		Path:        "/shares/{id}/comments",
		Summary:     "List comments",
		Description: "Returns a share's comments, oldest first",
		Tags:        []string{"Interactions"},
	}, s.handleListComments)
}

// === DTOs ===

// ToggleLikeInput contains parameters for toggling a like.
type ToggleLikeInput struct {
	ID   int64 `path:"id" doc:"Share ID"`
	Body struct {
		MemberID int64 `json:"memberId" minimum:"1" doc:"Member liking the share"`
	}
}

// ToggleLikeResponse reports the like state after the toggle.
type ToggleLikeResponse struct {
	Liked bool `json:"liked" doc:"Whether the member now likes the share"`
}

// ToggleLikeOutput wraps the toggle response for Huma.
type ToggleLikeOutput struct {
	Body ToggleLikeResponse
}

// AddCommentInput contains parameters for adding a comment.
type AddCommentInput struct {
	ID   int64 `path:"id" doc:"Share ID"`
	Body struct {
		MemberID int64  `json:"memberId" minimum:"1" doc:"Commenting member"`
		Text     string `json:"text" doc:"Comment text, trimmed; must not be empty"`
	}
}

// AddCommentResponse identifies the new comment.
type AddCommentResponse struct {
	ID int64 `json:"id" doc:"Comment ID"`
}

// AddCommentOutput wraps the add comment response for Huma.
type AddCommentOutput struct {
	Body AddCommentResponse
}

// ListCommentsInput contains parameters for listing comments.
type ListCommentsInput struct {
	ID int64 `path:"id" doc:"Share ID"`
}

// ListCommentsOutput wraps the comment list for Huma.
type ListCommentsOutput struct {
	Body []*domain.Comment
}

// === Handlers ===

func (s *Server) handleToggleLike(ctx context.Context, input *ToggleLikeInput) (*ToggleLikeOutput, error) {
	liked, err := s.services.Interactions.ToggleLike(ctx, input.ID, input.Body.MemberID)
	if err != nil {
		return nil, err
	}
	return &ToggleLikeOutput{Body: ToggleLikeResponse{Liked: liked}}, nil
}

func (s *Server) handleAddComment(ctx context.Context, input *AddCommentInput) (*AddCommentOutput, error) {
	id, err := s.services.Interactions.AddComment(ctx, input.ID, input.Body.MemberID, input.Body.Text)
	if err != nil {
		return nil, err
	}
	return &AddCommentOutput{Body: AddCommentResponse{ID: id}}, nil
}

func (s *Server) handleListComments(ctx context.Context, input *ListCommentsInput) (*ListCommentsOutput, error) {
	comments, err := s.services.Interactions.ListComments(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListCommentsOutput{Body: comments}, nil
}
