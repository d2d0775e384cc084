package command

import (
	"context"
	"fmt"

	"github.com/tair/lightspace/internal/storefront/domain"
)

// ToggleFavoriteCommand represents the command to flip a favorite
type ToggleFavoriteCommand struct {
	SessionID string
	ProductID int
}

// ToggleFavoriteHandler handles toggle favorite command
type ToggleFavoriteHandler struct {
	repo domain.SessionRepository
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(repo domain.SessionRepository) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{repo: repo}
}

// Handle flips membership and returns the new state
func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (bool, *domain.Session, error) {
	var favorite bool
	s, err := h.repo.Update(ctx, cmd.SessionID, func(s *domain.Session) error {
		favorite = s.Favorites.Toggle(cmd.ProductID)
		return nil
	})
	if err != nil {
		return false, nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return favorite, s, nil
}
