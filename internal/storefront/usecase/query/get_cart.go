package query

import (
	"context"
	"fmt"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	"github.com/tair/lightspace/internal/storefront/domain"
)

// CartView is the basket screen
type CartView struct {
	Items          []domain.CartItem `json:"items"`
	Count          int               `json:"count"`
	Total          int64             `json:"total"`
	FormattedTotal string            `json:"formatted_total"`
}

// NewCartView derives count and totals from the cart
func NewCartView(c domain.Cart) *CartView {
	total := c.Total()
	return &CartView{
		Items:          c.Items,
		Count:          c.Count(),
		Total:          total,
		FormattedTotal: catalog.FormatWon(total),
	}
}

// GetCartQuery represents the query to get a session's cart
type GetCartQuery struct {
	SessionID string
}

// GetCartHandler handles get cart query
type GetCartHandler struct {
	repo domain.SessionRepository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(repo domain.SessionRepository) *GetCartHandler {
	return &GetCartHandler{repo: repo}
}

// Handle executes the get cart query
func (h *GetCartHandler) Handle(ctx context.Context, q GetCartQuery) (*CartView, error) {
	s, err := h.repo.Get(ctx, q.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return NewCartView(s.Cart), nil
}
