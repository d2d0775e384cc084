package query

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tair/lightspace/internal/catalog/domain"
)

// ListProductsQuery represents a search/filter/sort request over the catalog
type ListProductsQuery struct {
	Search  string
	Filters domain.FilterOptions
	Sort    domain.SortOption
}

// ProductList is the visible list plus enough context to tell an empty
// result apart from an unfiltered catalog
type ProductList struct {
	Products       []domain.Product `json:"products"`
	Total          int              `json:"total"`
	CatalogSize    int              `json:"catalog_size"`
	FiltersApplied bool             `json:"filters_applied"`
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*ProductList, error) {
	sortBy, err := domain.ParseSortOption(string(q.Sort))
	if err != nil {
		return nil, err
	}
	if err := q.Filters.Validate(); err != nil {
		return nil, err
	}

	all, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	visible := FilterProducts(all, q.Search, q.Filters)
	SortProducts(visible, sortBy)

	return &ProductList{
		Products:       visible,
		Total:          len(visible),
		CatalogSize:    len(all),
		FiltersApplied: q.Search != "" || !q.Filters.IsEmpty(),
	}, nil
}

// FilterProducts keeps catalog order and returns only matching products
func FilterProducts(products []domain.Product, search string, filters domain.FilterOptions) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if domain.MatchesSearch(p, search) && filters.Matches(p) {
			out = append(out, *p)
		}
	}
	return out
}

// SortProducts orders products in place. Both orderings are stable.
func SortProducts(products []domain.Product, by domain.SortOption) {
	switch by {
	case domain.SortAZ:
		// Collator keeps internal buffers and is not safe to share
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	case domain.SortPrice:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceValue < products[j].PriceValue
		})
	}
}
