package command

import (
	"context"
	"fmt"

	"github.com/tair/lightspace/internal/storefront/domain"
)

// UpdateQuantityCommand represents the command to set a cart line quantity
type UpdateQuantityCommand struct {
	SessionID string
	ProductID int
	Quantity  int
}

// UpdateQuantityHandler handles update quantity command
type UpdateQuantityHandler struct {
	repo domain.SessionRepository
}

// NewUpdateQuantityHandler creates a new update quantity handler
func NewUpdateQuantityHandler(repo domain.SessionRepository) *UpdateQuantityHandler {
	return &UpdateQuantityHandler{repo: repo}
}

// Handle executes the update quantity command. Zero removes the line.
func (h *UpdateQuantityHandler) Handle(ctx context.Context, cmd UpdateQuantityCommand) (*domain.Session, error) {
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", domain.ErrInvalidQuantity)
	}

	s, err := h.repo.Update(ctx, cmd.SessionID, func(s *domain.Session) error {
		return s.Cart.UpdateQuantity(cmd.ProductID, cmd.Quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}
	return s, nil
}
