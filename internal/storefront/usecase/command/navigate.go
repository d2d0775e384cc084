package command

import (
	"context"
	"fmt"
	"time"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/internal/storefront/metrics"
	"github.com/tair/lightspace/kafka"
	"github.com/tair/lightspace/pkg/logger"
	"github.com/tair/lightspace/pkg/task"
)

// NavigateCommand represents one navigation transition.
// ProductID is used by select-product, Screen by menu and Customer by
// proceed-to-payment.
type NavigateCommand struct {
	SessionID string
	Action    string
	ProductID int
	Screen    string
	Customer  domain.CustomerInfo
}

// NavigateResult carries the updated session and, after complete-purchase,
// the order that was placed
type NavigateResult struct {
	Session *domain.Session
	Order   *domain.Order
}

// NavigateHandler handles navigation commands
type NavigateHandler struct {
	repo      domain.SessionRepository
	products  catalog.ProductRepository
	tasks     *task.Registry
	publisher kafka.OrderPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewNavigateHandler creates a new navigate handler
func NewNavigateHandler(
	repo domain.SessionRepository,
	products catalog.ProductRepository,
	tasks *task.Registry,
	publisher kafka.OrderPublisher,
	m *metrics.Metrics,
) *NavigateHandler {
	return &NavigateHandler{
		repo:      repo,
		products:  products,
		tasks:     tasks,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// Handle applies the transition
func (h *NavigateHandler) Handle(ctx context.Context, cmd NavigateCommand) (*NavigateResult, error) {
	action, err := domain.ParseAction(cmd.Action)
	if err != nil {
		return nil, err
	}

	var menuView domain.View
	switch action {
	case domain.ActionSelectProduct:
		if _, err := h.products.FindByID(ctx, cmd.ProductID); err != nil {
			return nil, err
		}
	case domain.ActionMenu:
		if menuView, err = domain.ParseMenuView(cmd.Screen); err != nil {
			return nil, err
		}
	}

	var (
		order        *domain.Order
		leftAnalyzer bool
	)
	s, err := h.repo.Update(ctx, cmd.SessionID, func(s *domain.Session) error {
		order = nil
		wasOnAnalyzer := s.Navigation.View == domain.ViewRoomAnalyzer

		switch action {
		case domain.ActionSelectProduct:
			s.SelectProduct(cmd.ProductID)
		case domain.ActionBackToList:
			s.BackToList()
		case domain.ActionOpenCart:
			s.OpenCart()
		case domain.ActionBackFromBasket:
			s.BackFromBasket()
		case domain.ActionCheckout:
			s.Checkout()
		case domain.ActionBackFromCheckout:
			s.BackFromCheckout()
		case domain.ActionProceedToPayment:
			if err := s.ProceedToPayment(cmd.Customer); err != nil {
				return err
			}
		case domain.ActionBackFromPayment:
			s.BackFromPayment()
		case domain.ActionProceedToConfirmation:
			s.ProceedToConfirmation()
		case domain.ActionBackFromConfirmation:
			s.BackFromConfirmation()
		case domain.ActionCompletePurchase:
			order = s.CompletePurchase(h.now())
		case domain.ActionContinueShopping:
			s.ContinueShopping()
		case domain.ActionMenu:
			s.NavigateMenu(menuView)
		case domain.ActionRoomAnalyzer:
			s.OpenRoomAnalyzer()
		case domain.ActionOpenMenu:
			s.SetNavOpen(true)
		case domain.ActionCloseMenu:
			s.SetNavOpen(false)
		}

		leftAnalyzer = wasOnAnalyzer && s.Navigation.View != domain.ViewRoomAnalyzer
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}
	h.metrics.Navigated(string(action))

	if leftAnalyzer && h.tasks.CancelVersion(AnalysisTaskKey(cmd.SessionID), s.Analysis.Seq) {
		logger.Debug(ctx).Str("session_id", cmd.SessionID).Msg("Room analysis cancelled by navigation")
	}

	if order != nil {
		h.metrics.PurchaseCompleted(order.Total)
		h.publishOrder(ctx, cmd.SessionID, order)
	}

	logger.Debug(ctx).
		Str("session_id", cmd.SessionID).
		Str("action", string(action)).
		Str("view", string(s.Navigation.View)).
		Msg("Navigation applied")

	return &NavigateResult{Session: s, Order: order}, nil
}

// publishOrder emits the order event. Failure does not undo the purchase.
func (h *NavigateHandler) publishOrder(ctx context.Context, sessionID string, order *domain.Order) {
	lines := make([]kafka.OrderLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, kafka.OrderLine{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			PriceValue: it.PriceValue,
		})
	}

	event := kafka.OrderCompletedEvent{
		SessionID:   sessionID,
		OrderNumber: order.Number,
		Lines:       lines,
		ItemCount:   order.ItemCount,
		Total:       order.Total,
		Currency:    kafka.CurrencyKRW,
		City:        order.Customer.City,
		Country:     order.Customer.Country,
		PlacedAt:    order.PlacedAt,
	}

	if err := h.publisher.PublishOrderCompleted(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("session_id", sessionID).
			Str("order_number", order.Number).
			Msg("Failed to publish order completed event")
		return
	}

	logger.Info(ctx).
		Str("session_id", sessionID).
		Str("order_number", order.Number).
		Int64("total", order.Total).
		Msg("Purchase completed")
}
