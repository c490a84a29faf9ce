package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/inkshelf/inkshelf-server/internal/api"
	"github.com/inkshelf/inkshelf-server/internal/config"
	"github.com/inkshelf/inkshelf-server/internal/logger"
	"github.com/inkshelf/inkshelf-server/internal/repository"
	"github.com/inkshelf/inkshelf-server/internal/service"
)

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

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	authService := do.MustInvoke[*service.AuthService](i)
	users := do.MustInvoke[repository.UserRepository](i)
	books := do.MustInvoke[repository.BookRepository](i)
	favourites := do.MustInvoke[repository.FavouriteRepository](i)
	collections := do.MustInvoke[repository.CollectionRepository](i)
	quotes := do.MustInvoke[repository.QuoteRepository](i)
	loginLimiter := do.MustInvoke[*LoginLimiterHandle](i)

	handler := api.NewServer(
		authService,
		users,
		books,
		favourites,
		collections,
		quotes,
		loginLimiter.KeyedLimiter,
		log.Logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
