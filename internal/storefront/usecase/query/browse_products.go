package query

import (
	"context"
	"fmt"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	catalogquery "github.com/tair/lightspace/internal/catalog/usecase/query"
	"github.com/tair/lightspace/internal/storefront/domain"
)

// ProductCard is a list entry with the session's favorite flag
type ProductCard struct {
	catalog.Product
	IsFavorite bool `json:"is_favorite"`
}

// BrowseResult is the visible list under a session's browse state
type BrowseResult struct {
	Products       []ProductCard      `json:"products"`
	Total          int                `json:"total"`
	CatalogSize    int                `json:"catalog_size"`
	FiltersApplied bool               `json:"filters_applied"`
	Browse         domain.BrowseState `json:"browse"`
}

// BrowseProductsQuery represents the query to list products for a session
type BrowseProductsQuery struct {
	SessionID string
}

// BrowseProductsHandler handles browse products query
type BrowseProductsHandler struct {
	repo domain.SessionRepository
	list *catalogquery.ListProductsHandler
}

// NewBrowseProductsHandler creates a new browse products handler
func NewBrowseProductsHandler(repo domain.SessionRepository, list *catalogquery.ListProductsHandler) *BrowseProductsHandler {
	return &BrowseProductsHandler{repo: repo, list: list}
}

// Handle applies the stored search, filters and sort
func (h *BrowseProductsHandler) Handle(ctx context.Context, q BrowseProductsQuery) (*BrowseResult, error) {
	s, err := h.repo.Get(ctx, q.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	list, err := h.list.Handle(ctx, catalogquery.ListProductsQuery{
		Search:  s.Browse.Search,
		Filters: s.Browse.Filters,
		Sort:    s.Browse.Sort,
	})
	if err != nil {
		return nil, err
	}

	cards := make([]ProductCard, len(list.Products))
	for i, p := range list.Products {
		cards[i] = ProductCard{Product: p, IsFavorite: s.Favorites.Has(p.ID)}
	}

	return &BrowseResult{
		Products:       cards,
		Total:          list.Total,
		CatalogSize:    list.CatalogSize,
		FiltersApplied: list.FiltersApplied,
		Browse:         s.Browse,
	}, nil
}
