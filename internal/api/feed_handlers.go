package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

func (s *Server) registerFeedRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFeed",
		Method:      http.MethodGet,
		Path:        "/feed",
		Summary:     "Community feed",
		Description: "Returns unexpired public shares, newest first, with live like and comment counts",
		Tags:        []string{"Feed"},
	}, s.handleListFeed)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/members/{id}",
		Summary:     "Member profile",
		Description: "Returns a member's identity with follower, following, book and share counts",
		Tags:        []string{"Members"},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/categories",
		Summary:     "List categories",
		Description: "Returns the genres of shared entries with counts",
		Tags:        []string{"Feed"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategoryEntries",
		Method:      http.MethodGet,
		Path:        "/categories/{slug}/entries",
		Summary:     "List category entries",
		Description: "Returns shared entries whose genre matches the slug, newest first",
		Tags:        []string{"Feed"},
	}, s.handleListCategoryEntries)
}

// === DTOs ===

// ListFeedInput contains parameters for the community feed.
type ListFeedInput struct {
	Limit int `query:"limit" doc:"Maximum items (default 50, capped at the configured maximum)"`
}

// ListFeedOutput wraps the feed for Huma.
type ListFeedOutput struct {
	Body []*domain.FeedItem
}

// ProfileOutput wraps a profile for Huma.
type ProfileOutput struct {
	Body domain.Profile
}

// ListCategoriesOutput wraps the category list for Huma.
type ListCategoriesOutput struct {
	Body []domain.Category
}

// CategoryEntriesInput contains parameters for listing a category.
type CategoryEntriesInput struct {
	Slug string `path:"slug" doc:"Category slug, e.g. science-fiction"`
}

// CategoryEntriesOutput wraps the category entries for Huma.
type CategoryEntriesOutput struct {
	Body []*domain.CategoryEntry
}

// === Handlers ===

func (s *Server) handleListFeed(ctx context.Context, input *ListFeedInput) (*ListFeedOutput, error) {
	items, err := s.services.Feed.ListCommunityFeed(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	return &ListFeedOutput{Body: items}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, input *MemberIDInput) (*ProfileOutput, error) {
	profile, err := s.services.Feed.GetProfile(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := s.services.Feed.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &ListCategoriesOutput{Body: categories}, nil
}

func (s *Server) handleListCategoryEntries(ctx context.Context, input *CategoryEntriesInput) (*CategoryEntriesOutput, error) {
	entries, err := s.services.Feed.ListCategory(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &CategoryEntriesOutput{Body: entries}, nil
}
