package providers

import (
	"github.com/samber/do/v2"

	"github.com/inkshelf/inkshelf-server/internal/repository"
)

// ProvideUserRepository provides the user repository.
func ProvideUserRepository(i do.Injector) (repository.UserRepository, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return repository.NewUserRepository(storeHandle.Store), nil
}

// ProvideBookRepository provides the book repository.
func ProvideBookRepository(i do.Injector) (repository.BookRepository, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return repository.NewBookRepository(storeHandle.Store), nil
}

// ProvideFavouriteRepository provides the favourite repository.
func ProvideFavouriteRepository(i do.Injector) (repository.FavouriteRepository, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return repository.NewFavouriteRepository(storeHandle.Store), nil
}

// ProvideCollectionRepository provides the collection repository.
func ProvideCollectionRepository(i do.Injector) (repository.CollectionRepository, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return repository.NewCollectionRepository(storeHandle.Store), nil
}

// ProvideQuoteRepository provides the quote repository.
func ProvideQuoteRepository(i do.Injector) (repository.QuoteRepository, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return repository.NewQuoteRepository(storeHandle.Store), nil
}
