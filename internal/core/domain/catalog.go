package domain

import "github.com/govalues/decimal"

type Product struct {
	ID        string
	Name      string
	Brand     string
	Category  string
	Vendor    string
	Price     decimal.Decimal
	Currency  string
	Available bool
}

type Brand struct {
	ID   string
	Name string
}

type Category struct {
	ID     string
	Name   string
	Parent string
}

// Service is a bookable storefront service, priced on request when
// ToBeQuoted is set.
type Service struct {
	ID         string
	Name       string
	Vendor     string
	Price      decimal.Decimal
	Currency   string
	ToBeQuoted bool
}

type CatalogFilter struct {
	Search   string
	Category string
	Brand    string
	Page     int
}
