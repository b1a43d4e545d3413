package storehub

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

type productDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Brand     string      `json:"brand"`
	Category  string      `json:"category"`
	Vendor    string      `json:"vendor"`
	Price     wireDecimal `json:"price"`
	Currency  string      `json:"currency"`
	Available bool        `json:"available"`
}

type brandDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoryDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parent string `json:"parent"`
}

type serviceDTO struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Vendor     string      `json:"vendor"`
	Price      wireDecimal `json:"price"`
	Currency   string      `json:"currency"`
	ToBeQuoted bool        `json:"to_be_quoted"`
}

func applyCatalogFilter(req *resty.Request, filter domain.CatalogFilter) {
	if filter.Search != "" {
		req.SetQueryParam("search", filter.Search)
	}
	if filter.Category != "" {
		req.SetQueryParam("category", filter.Category)
	}
	if filter.Brand != "" {
		req.SetQueryParam("brand", filter.Brand)
	}
	if filter.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(filter.Page))
	}
}

func (c *Client) ListProducts(ctx context.Context, filter domain.CatalogFilter) (*domain.Page[domain.Product], error) {
	var env listEnvelope[productDTO]
	req := c.http.R().SetContext(ctx).SetResult(&env)
	applyCatalogFilter(req, filter)

	resp, err := req.Get("/api/products/")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, domain.ErrNotFound)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}

	items := make([]domain.Product, 0, len(env.Results))
	for _, d := range env.Results {
		items = append(items, domain.Product{
			ID:        d.ID,
			Name:      d.Name,
			Brand:     d.Brand,
			Category:  d.Category,
			Vendor:    d.Vendor,
			Price:     d.Price.Decimal,
			Currency:  d.Currency,
			Available: d.Available,
		})
	}
	return &domain.Page[domain.Product]{Items: items, Total: *env.Count}, nil
}

func (c *Client) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	var env listEnvelope[brandDTO]
	resp, err := c.http.R().SetContext(ctx).SetResult(&env).Get("/api/brands/")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, domain.ErrNotFound)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}

	items := make([]domain.Brand, 0, len(env.Results))
	for _, d := range env.Results {
		items = append(items, domain.Brand{ID: d.ID, Name: d.Name})
	}
	return items, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var env listEnvelope[categoryDTO]
	resp, err := c.http.R().SetContext(ctx).SetResult(&env).Get("/api/categories/")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, domain.ErrNotFound)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}

	items := make([]domain.Category, 0, len(env.Results))
	for _, d := range env.Results {
		items = append(items, domain.Category{ID: d.ID, Name: d.Name, Parent: d.Parent})
	}
	return items, nil
}

func (c *Client) ListServices(ctx context.Context, filter domain.CatalogFilter) (*domain.Page[domain.Service], error) {
	var env listEnvelope[serviceDTO]
	req := c.http.R().SetContext(ctx).SetResult(&env)
	applyCatalogFilter(req, filter)

	resp, err := req.Get("/api/services/")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransport, err)
	}
	if resp.IsError() {
		return nil, c.apiError(resp, domain.ErrNotFound)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}

	items := make([]domain.Service, 0, len(env.Results))
	for _, d := range env.Results {
		items = append(items, domain.Service{
			ID:         d.ID,
			Name:       d.Name,
			Vendor:     d.Vendor,
			Price:      d.Price.Decimal,
			Currency:   d.Currency,
			ToBeQuoted: d.ToBeQuoted,
		})
	}
	return &domain.Page[domain.Service]{Items: items, Total: *env.Count}, nil
}
