package query

import (
	"context"
	"fmt"

	"github.com/tair/lightspace/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID int
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	if q.ID <= 0 {
		return nil, fmt.Errorf("%w: invalid id %d", domain.ErrProductNotFound, q.ID)
	}
	return h.repo.FindByID(ctx, q.ID)
}
