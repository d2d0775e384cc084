package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/internal/storefront/metrics"
	"github.com/tair/lightspace/pkg/logger"
	"github.com/tair/lightspace/pkg/task"
)

// AddToCartCommand represents the command to add a product to the cart.
// ProductID 0 means the product currently open on the detail screen.
type AddToCartCommand struct {
	SessionID string
	ProductID int
	Quantity  int
}

// AddToCartResult reports whether anything was added
type AddToCartResult struct {
	Added   bool
	Session *domain.Session
}

// AddToCartHandler handles add to cart command
type AddToCartHandler struct {
	repo            domain.SessionRepository
	products        catalog.ProductRepository
	tasks           *task.Registry
	overlayDuration time.Duration
	metrics         *metrics.Metrics
}

// NewAddToCartHandler creates a new add to cart handler
func NewAddToCartHandler(
	repo domain.SessionRepository,
	products catalog.ProductRepository,
	tasks *task.Registry,
	overlayDuration time.Duration,
	m *metrics.Metrics,
) *AddToCartHandler {
	return &AddToCartHandler{
		repo:            repo,
		products:        products,
		tasks:           tasks,
		overlayDuration: overlayDuration,
		metrics:         m,
	}
}

// Handle adds the product and shows the overlay. An unknown product or a
// missing selection leaves the session untouched and reports Added=false.
func (h *AddToCartHandler) Handle(ctx context.Context, cmd AddToCartCommand) (*AddToCartResult, error) {
	var (
		added   int
		seq     uint64
		product *catalog.Product
	)

	s, err := h.repo.Update(ctx, cmd.SessionID, func(s *domain.Session) error {
		added, seq, product = 0, 0, nil

		id := cmd.ProductID
		if id == 0 {
			id = s.Navigation.SelectedProductID
		}
		if id == 0 {
			return nil
		}

		p, err := h.products.FindByID(ctx, id)
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		product = p
		added = s.Cart.Add(p, cmd.Quantity)
		line, _ := s.Cart.Find(p.ID)
		seq = s.Overlay.Show(line, added)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	if product == nil {
		logger.Debug(ctx).
			Str("session_id", cmd.SessionID).
			Int("product_id", cmd.ProductID).
			Msg("Add to cart ignored, no such product")
		return &AddToCartResult{Added: false, Session: s}, nil
	}

	h.scheduleOverlayHide(cmd.SessionID, seq)
	h.metrics.CartItemAdded(added)

	logger.Info(ctx).
		Str("session_id", cmd.SessionID).
		Int("product_id", product.ID).
		Int("quantity", added).
		Int("cart_count", s.Cart.Count()).
		Msg("Product added to cart")

	return &AddToCartResult{Added: true, Session: s}, nil
}

// scheduleOverlayHide replaces any pending hide for the session. The
// overlay Seq orders concurrent adds, so a hide scheduled late by an older
// add never replaces the hide of a newer one.
func (h *AddToCartHandler) scheduleOverlayHide(sessionID string, seq uint64) {
	h.tasks.ScheduleVersion(OverlayTaskKey(sessionID), seq, h.overlayDuration, func(ctx context.Context) {
		_, err := h.repo.Update(ctx, sessionID, func(s *domain.Session) error {
			s.Overlay.Hide(seq)
			return nil
		})
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) && ctx.Err() == nil {
			logger.Logger.Warn().
				Err(err).
				Str("session_id", sessionID).
				Msg("Failed to hide overlay")
		}
	})
}
