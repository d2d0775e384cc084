package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tair/lightspace/internal/analyzer"
	catalog "github.com/tair/lightspace/internal/catalog/domain"
	"github.com/tair/lightspace/internal/storefront/domain"
)

// AnalysisView is the room analyzer state with recommendations resolved
type AnalysisView struct {
	Status              domain.AnalysisStatus `json:"status"`
	Image               *analyzer.ImageRef    `json:"image,omitempty"`
	Result              *analyzer.Result      `json:"result,omitempty"`
	RecommendedProducts []catalog.Product     `json:"recommended_products"`
}

// SessionView is everything a client needs to render the current screen
type SessionView struct {
	ID              string              `json:"id"`
	View            domain.View         `json:"view"`
	NavOpen         bool                `json:"nav_open"`
	SelectedProduct *catalog.Product    `json:"selected_product"`
	CartCount       int                 `json:"cart_count"`
	CartTotal       int64               `json:"cart_total"`
	Overlay         domain.Overlay      `json:"overlay"`
	Favorites       domain.FavoriteSet  `json:"favorites"`
	Browse          domain.BrowseState  `json:"browse"`
	Customer        domain.CustomerInfo `json:"customer"`
	Analysis        AnalysisView        `json:"analysis"`
	LastOrder       *domain.Order       `json:"last_order,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// GetSessionQuery represents the query to get a session snapshot
type GetSessionQuery struct {
	SessionID string
}

// GetSessionHandler handles get session query
type GetSessionHandler struct {
	repo     domain.SessionRepository
	products catalog.ProductRepository
}

// NewGetSessionHandler creates a new get session handler
func NewGetSessionHandler(repo domain.SessionRepository, products catalog.ProductRepository) *GetSessionHandler {
	return &GetSessionHandler{repo: repo, products: products}
}

// Handle executes the get session query
func (h *GetSessionHandler) Handle(ctx context.Context, q GetSessionQuery) (*SessionView, error) {
	s, err := h.repo.Get(ctx, q.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return BuildSessionView(ctx, h.products, s)
}

// BuildSessionView resolves product references of s against the catalog.
// A selected product that no longer resolves renders as null.
func BuildSessionView(ctx context.Context, products catalog.ProductRepository, s *domain.Session) (*SessionView, error) {
	view := &SessionView{
		ID:        s.ID,
		View:      s.Navigation.View,
		NavOpen:   s.Navigation.NavOpen,
		CartCount: s.Cart.Count(),
		CartTotal: s.Cart.Total(),
		Overlay:   s.Overlay,
		Favorites: s.Favorites,
		Browse:    s.Browse,
		Customer:  s.Customer,
		Analysis: AnalysisView{
			Status:              s.Analysis.Status,
			Image:               s.Analysis.Image,
			Result:              s.Analysis.Result,
			RecommendedProducts: []catalog.Product{},
		},
		LastOrder: s.LastOrder,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	if id := s.Navigation.SelectedProductID; id != 0 {
		p, err := products.FindByID(ctx, id)
		switch {
		case err == nil:
			view.SelectedProduct = p
		case !errors.Is(err, catalog.ErrProductNotFound):
			return nil, fmt.Errorf("failed to resolve selected product: %w", err)
		}
	}

	if res := s.Analysis.Result; res != nil {
		for _, id := range res.Recommendations {
			p, err := products.FindByID(ctx, id)
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to resolve recommendation: %w", err)
			}
			view.Analysis.RecommendedProducts = append(view.Analysis.RecommendedProducts, *p)
		}
	}

	return view, nil
}
