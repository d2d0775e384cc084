package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/tair/lightspace/internal/catalog/domain"
)

// FilterOptionSet lists the selectable values for each filter dimension
type FilterOptionSet struct {
	Rooms       []string             `json:"rooms"`
	Styles      []string             `json:"styles"`
	PriceRanges []domain.PriceBucket `json:"price_ranges"`
	SortOptions []domain.SortOption  `json:"sort_options"`
}

// GetFilterOptionsHandler derives filter choices from the catalog
type GetFilterOptionsHandler struct {
	repo domain.ProductRepository
}

// NewGetFilterOptionsHandler creates a new filter options handler
func NewGetFilterOptionsHandler(repo domain.ProductRepository) *GetFilterOptionsHandler {
	return &GetFilterOptionsHandler{repo: repo}
}

// Handle returns distinct rooms and styles (sorted) and the fixed buckets
func (h *GetFilterOptionsHandler) Handle(ctx context.Context) (*FilterOptionSet, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	rooms := map[string]bool{}
	styles := map[string]bool{}
	for _, p := range products {
		if p.Room != "" {
			rooms[p.Room] = true
		}
		if p.Style != "" {
			styles[p.Style] = true
		}
	}

	return &FilterOptionSet{
		Rooms:       sortedKeys(rooms),
		Styles:      sortedKeys(styles),
		PriceRanges: append([]domain.PriceBucket(nil), domain.PriceBuckets...),
		SortOptions: []domain.SortOption{domain.SortDefault, domain.SortAZ, domain.SortPrice},
	}, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
