package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/bookcircle/bookcircle-server/internal/config"
	"github.com/bookcircle/bookcircle-server/internal/logger"
	"github.com/bookcircle/bookcircle-server/internal/service"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// ProvideValidator provides the shared request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideSharingService provides the sharing service.
func ProvideSharingService(i do.Injector) (*service.SharingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSharingService(storeHandle.Store, log.Component("sharing")), nil
}

// ProvideInteractionService provides the like and comment service.
func ProvideInteractionService(i do.Injector) (*service.InteractionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInteractionService(storeHandle.Store, log.Component("interactions")), nil
}

// ProvideFollowService provides the follow graph service.
func ProvideFollowService(i do.Injector) (*service.FollowService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFollowService(storeHandle.Store, log.Component("follows")), nil
}

// ProvideFeedService provides the community feed service.
func ProvideFeedService(i do.Injector) (*service.FeedService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	limits := service.FeedLimits{
		Default: cfg.Feed.DefaultLimit,
		Max:     cfg.Feed.MaxLimit,
	}
	return service.NewFeedService(storeHandle.Store, log.Component("feed"), limits), nil
}

// ProvideMemberService provides the member registration service.
func ProvideMemberService(i do.Injector) (*service.MemberService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMemberService(storeHandle.Store, validator, log.Component("members")), nil
}

// ProvideLibraryService provides the personal library service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(storeHandle.Store, validator, log.Component("library")), nil
}

// ProvideCatalogService provides the public-domain catalogue service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, indexHandle.CatalogIndex, validator, log.Component("catalog")), nil
}

// PrepareCatalog seeds the sample books when configured and loads the
// catalogue into the search index. Call it after all services are wired.
func PrepareCatalog(i do.Injector) error {
	cfg := do.MustInvoke[*config.Config](i)
	catalog := do.MustInvoke[*service.CatalogService](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx := context.Background()

	if cfg.Catalog.SeedSampleBooks {
		if _, err := catalog.SeedSampleBooks(ctx); err != nil {
			return fmt.Errorf("seed sample books: %w", err)
		}
	}

	if err := catalog.RebuildIndex(ctx); err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}

	docCount, _ := indexHandle.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return nil
}
