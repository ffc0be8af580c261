// Package di wires the BookCircle server together with samber/do.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookcircle/bookcircle-server/internal/api"
	"github.com/bookcircle/bookcircle-server/internal/config"
	"github.com/bookcircle/bookcircle-server/internal/di/providers"
	"github.com/bookcircle/bookcircle-server/internal/logger"
	"github.com/bookcircle/bookcircle-server/internal/service"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// NewContainer creates the DI container, loading configuration from the
// process arguments and environment.
func NewContainer() *do.RootScope {
	injector := do.New()
	do.Provide(injector, providers.ProvideConfig)
	registerProviders(injector)
	return injector
}

// NewContainerWithConfig creates the DI container around an already built config.
func NewContainerWithConfig(cfg *config.Config) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	registerProviders(injector)
	return injector
}

func registerProviders(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideLogger)

	// Persistence and search
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideSharingService)
	do.Provide(injector, providers.ProvideInteractionService)
	do.Provide(injector, providers.ProvideFollowService)
	do.Provide(injector, providers.ProvideFeedService)
	do.Provide(injector, providers.ProvideMemberService)
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideCatalogService)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)
}

// Bootstrap initializes the core services and prepares the catalogue.
// It does not start listening; see Serve.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*validation.Validator](injector); err != nil {
		return err
	}

	// Business services
	_ = do.MustInvoke[*service.SharingService](injector)
	_ = do.MustInvoke[*service.InteractionService](injector)
	_ = do.MustInvoke[*service.FollowService](injector)
	_ = do.MustInvoke[*service.FeedService](injector)
	_ = do.MustInvoke[*service.MemberService](injector)
	_ = do.MustInvoke[*service.LibraryService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)

	if err := providers.PrepareCatalog(injector); err != nil {
		return err
	}

	_, err := do.Invoke[*providers.APIServerHandle](injector)
	return err
}

// Serve starts the HTTP listener in the background.
func Serve(injector do.Injector) error {
	_, err := do.Invoke[*providers.HTTPServerHandle](injector)
	return err
}

// Handler returns the bootstrapped API handler without starting a listener.
func Handler(injector do.Injector) (*api.Server, error) {
	handle, err := do.Invoke[*providers.APIServerHandle](injector)
	if err != nil {
		return nil, err
	}
	return handle.Server, nil
}
