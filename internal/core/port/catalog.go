package port

import (
	"context"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

type CatalogAPI interface {
	ListProducts(ctx context.Context, filter domain.CatalogFilter) (*domain.Page[domain.Product], error)
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListServices(ctx context.Context, filter domain.CatalogFilter) (*domain.Page[domain.Service], error)
}

type AuthAPI interface {
	// Login exchanges credentials for a token pair and stores them in the
	// injected session.
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error
}
