package stubapi

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

// The stub catalog is static: just enough rows for the browse surface.
type CatalogHandler struct {
	products   []domain.Product
	brands     []domain.Brand
	categories []domain.Category
	services   []domain.Service
}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) SeedProducts(products []domain.Product) {
	h.products = products
}

func (h *CatalogHandler) SeedBrands(brands []domain.Brand) {
	h.brands = brands
}

func (h *CatalogHandler) SeedCategories(categories []domain.Category) {
	h.categories = categories
}

func (h *CatalogHandler) SeedServices(services []domain.Service) {
	h.services = services
}

// SeedDefaults loads the demo catalog served by cmd/stubserver.
func (h *CatalogHandler) SeedDefaults() {
	h.brands = []domain.Brand{
		{ID: "b-1", Name: "Nordica"},
		{ID: "b-2", Name: "Atlas Home"},
	}
	h.categories = []domain.Category{
		{ID: "c-1", Name: "Furniture"},
		{ID: "c-2", Name: "Lighting", Parent: "c-1"},
	}
	h.products = []domain.Product{
		{ID: "p-1", Name: "Custom cabinet", Brand: "b-2", Category: "c-1", Vendor: "Vendor A", Price: decimal.MustParse("250.00"), Currency: "USD", Available: true},
		{ID: "p-2", Name: "Desk lamp", Brand: "b-1", Category: "c-2", Vendor: "Vendor B", Price: decimal.MustParse("40.25"), Currency: "USD", Available: true},
	}
	h.services = []domain.Service{
		{ID: "s-1", Name: "Assembly", Vendor: "Vendor A", Price: decimal.MustParse("30.00"), Currency: "USD"},
		{ID: "s-2", Name: "Interior consult", Vendor: "Vendor C", ToBeQuoted: true},
	}
}

func (h *CatalogHandler) Products(ctx *gin.Context) {
	search := strings.ToLower(ctx.Query("search"))
	results := make([]gin.H, 0, len(h.products))
	for _, p := range h.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if c := ctx.Query("category"); c != "" && p.Category != c {
			continue
		}
		if b := ctx.Query("brand"); b != "" && p.Brand != b {
			continue
		}
		results = append(results, gin.H{
			"id":        p.ID,
			"name":      p.Name,
			"brand":     p.Brand,
			"category":  p.Category,
			"vendor":    p.Vendor,
			"price":     p.Price.String(),
			"currency":  p.Currency,
			"available": p.Available,
		})
	}
	handleSuccess(ctx, gin.H{"results": results, "count": len(results)})
}

func (h *CatalogHandler) Brands(ctx *gin.Context) {
	results := make([]gin.H, 0, len(h.brands))
	for _, b := range h.brands {
		results = append(results, gin.H{"id": b.ID, "name": b.Name})
	}
	handleSuccess(ctx, gin.H{"results": results, "count": len(results)})
}

func (h *CatalogHandler) Categories(ctx *gin.Context) {
	results := make([]gin.H, 0, len(h.categories))
	for _, c := range h.categories {
		results = append(results, gin.H{"id": c.ID, "name": c.Name, "parent": c.Parent})
	}
	handleSuccess(ctx, gin.H{"results": results, "count": len(results)})
}

func (h *CatalogHandler) Services(ctx *gin.Context) {
	results := make([]gin.H, 0, len(h.services))
	for _, s := range h.services {
		results = append(results, gin.H{
			"id":           s.ID,
			"name":         s.Name,
			"vendor":       s.Vendor,
			"price":        s.Price.String(),
			"currency":     s.Currency,
			"to_be_quoted": s.ToBeQuoted,
		})
	}
	handleSuccess(ctx, gin.H{"results": results, "count": len(results)})
}
