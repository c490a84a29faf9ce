// Package di provides dependency injection configuration for the Inkshelf server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/inkshelf/inkshelf-server/internal/auth"
	"github.com/inkshelf/inkshelf-server/internal/config"
	"github.com/inkshelf/inkshelf-server/internal/di/providers"
	"github.com/inkshelf/inkshelf-server/internal/logger"
	"github.com/inkshelf/inkshelf-server/internal/repository"
	"github.com/inkshelf/inkshelf-server/internal/service"
	"github.com/inkshelf/inkshelf-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Repositories
	do.Provide(injector, providers.ProvideUserRepository)
	do.Provide(injector, providers.ProvideBookRepository)
	do.Provide(injector, providers.ProvideFavouriteRepository)
	do.Provide(injector, providers.ProvideCollectionRepository)
	do.Provide(injector, providers.ProvideQuoteRepository)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideLoginLimiter)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	// Repositories
	_ = do.MustInvoke[repository.UserRepository](injector)
	_ = do.MustInvoke[repository.BookRepository](injector)
	_ = do.MustInvoke[repository.FavouriteRepository](injector)
	_ = do.MustInvoke[repository.CollectionRepository](injector)
	_ = do.MustInvoke[repository.QuoteRepository](injector)

	// Auth and business services
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*providers.LoginLimiterHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
