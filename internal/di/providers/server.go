package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/bookcircle/bookcircle-server/internal/api"
	"github.com/bookcircle/bookcircle-server/internal/config"
	"github.com/bookcircle/bookcircle-server/internal/logger"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

// APIServerHandle wraps the API handler so its rate limiter is stopped on shutdown.
type APIServerHandle struct {
	*api.Server
}

// Shutdown implements do.Shutdownable.
func (h *APIServerHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideAPIServer builds the HTTP handler with every service attached.
func ProvideAPIServer(i do.Injector) (*APIServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	services := &api.Services{
		Sharing:      do.MustInvoke[*service.SharingService](i),
		Interactions: do.MustInvoke[*service.InteractionService](i),
		Follows:      do.MustInvoke[*service.FollowService](i),
		Feed:         do.MustInvoke[*service.FeedService](i),
		Members:      do.MustInvoke[*service.MemberService](i),
		Library:      do.MustInvoke[*service.LibraryService](i),
		Catalog:      do.MustInvoke[*service.CatalogService](i),
		Search:       indexHandle.CatalogIndex,
	}

	opts := api.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		WriteRPS:    cfg.RateLimit.RPS,
		WriteBurst:  cfg.RateLimit.Burst,
	}

	return &APIServerHandle{Server: api.NewServer(storeHandle.Store, services, opts, log.Component("http"))}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer starts the HTTP listener in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	handler := do.MustInvoke[*APIServerHandle](i)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
