package api

import (
	"github.com/bookcircle/bookcircle-server/internal/search"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

// Services holds all service dependencies for the API server.
type Services struct {
	Sharing      *service.SharingService
	Interactions *service.InteractionService
	Follows      *service.FollowService
	Feed         *service.FeedService
	Members      *service.MemberService
	Library      *service.LibraryService
	Catalog      *service.CatalogService
	Search       *search.CatalogIndex
}
