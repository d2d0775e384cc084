package command

import (
	"context"
	"fmt"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	"github.com/tair/lightspace/internal/storefront/domain"
)

// UpdateBrowseCommand replaces the search term, sort and filters of a session
type UpdateBrowseCommand struct {
	SessionID string
	Search    string
	Sort      string
	Filters   catalog.FilterOptions
}

// UpdateBrowseHandler handles update browse command
type UpdateBrowseHandler struct {
	repo domain.SessionRepository
}

// NewUpdateBrowseHandler creates a new update browse handler
func NewUpdateBrowseHandler(repo domain.SessionRepository) *UpdateBrowseHandler {
	return &UpdateBrowseHandler{repo: repo}
}

// Handle validates and stores the browse state
func (h *UpdateBrowseHandler) Handle(ctx context.Context, cmd UpdateBrowseCommand) (*domain.Session, error) {
	sortBy, err := catalog.ParseSortOption(cmd.Sort)
	if err != nil {
		return nil, err
	}
	if err := cmd.Filters.Validate(); err != nil {
		return nil, err
	}

	s, err := h.repo.Update(ctx, cmd.SessionID, func(s *domain.Session) error {
		s.Browse = domain.BrowseState{
			Search:  cmd.Search,
			Sort:    sortBy,
			Filters: cmd.Filters,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update browse state: %w", err)
	}
	return s, nil
}

// ToggleFilterCommand flips one filter value, e.g. room "Bedroom"
type ToggleFilterCommand struct {
	SessionID string
	Dimension string
	Value     string
}

// ToggleFilterHandler handles toggle filter command
type ToggleFilterHandler struct {
	repo domain.SessionRepository
}

// NewToggleFilterHandler creates a new toggle filter handler
func NewToggleFilterHandler(repo domain.SessionRepository) *ToggleFilterHandler {
	return &ToggleFilterHandler{repo: repo}
}

// Handle flips the value and keeps the rest of the browse state
func (h *ToggleFilterHandler) Handle(ctx context.Context, cmd ToggleFilterCommand) (*domain.Session, error) {
	if _, err := (catalog.FilterOptions{}).Toggle(cmd.Dimension, cmd.Value); err != nil {
		return nil, err
	}

	s, err := h.repo.Update(ctx, cmd.SessionID, func(s *domain.Session) error {
		filters, err := s.Browse.Filters.Toggle(cmd.Dimension, cmd.Value)
		if err != nil {
			return err
		}
		s.Browse.Filters = filters
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle filter: %w", err)
	}
	return s, nil
}
