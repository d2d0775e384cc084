package domain

import (
	"fmt"
	"time"
)

// View is the screen a session is currently on
type View string

const (
	ViewList              View = "list"
	ViewDetail            View = "detail"
	ViewBasket            View = "basket"
	ViewCheckout          View = "checkout"
	ViewPayment           View = "payment"
	ViewConfirmation      View = "confirmation"
	ViewOrderConfirmation View = "orderConfirmation"
	ViewRoomAnalyzer      View = "roomAnalyzer"
	ViewNewsstand         View = "newsstand"
	ViewAbout             View = "about"
	ViewProfile           View = "profile"
)

// MenuViews are the screens reachable from the side menu, in menu order
var MenuViews = []View{ViewList, ViewRoomAnalyzer, ViewNewsstand, ViewAbout, ViewProfile}

// ParseMenuView accepts only the screens listed in the side menu
func ParseMenuView(s string) (View, error) {
	for _, v := range MenuViews {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Action names a navigation transition
type Action string

const (
	ActionSelectProduct         Action = "select-product"
	ActionBackToList            Action = "back-to-list"
	ActionOpenCart              Action = "open-cart"
	ActionBackFromBasket        Action = "back-from-basket"
	ActionCheckout              Action = "checkout"
	ActionBackFromCheckout      Action = "back-from-checkout"
	ActionProceedToPayment      Action = "proceed-to-payment"
	ActionBackFromPayment       Action = "back-from-payment"
	ActionProceedToConfirmation Action = "proceed-to-confirmation"
	ActionBackFromConfirmation  Action = "back-from-confirmation"
	ActionCompletePurchase      Action = "complete-purchase"
	ActionContinueShopping      Action = "continue-shopping"
	ActionMenu                  Action = "menu"
	ActionRoomAnalyzer          Action = "room-analyzer"
	ActionOpenMenu              Action = "open-menu"
	ActionCloseMenu             Action = "close-menu"
)

var actions = map[Action]bool{
	ActionSelectProduct:         true,
	ActionBackToList:            true,
	ActionOpenCart:              true,
	ActionBackFromBasket:        true,
	ActionCheckout:              true,
	ActionBackFromCheckout:      true,
	ActionProceedToPayment:      true,
	ActionBackFromPayment:       true,
	ActionProceedToConfirmation: true,
	ActionBackFromConfirmation:  true,
	ActionCompletePurchase:      true,
	ActionContinueShopping:      true,
	ActionMenu:                  true,
	ActionRoomAnalyzer:          true,
	ActionOpenMenu:              true,
	ActionCloseMenu:             true,
}

// ParseAction rejects names that are not a known transition
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !actions[a] {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// Navigation is the current screen plus selection state
type Navigation struct {
	View              View `json:"view"`
	SelectedProductID int  `json:"selected_product_id,omitempty"`
	NavOpen           bool `json:"nav_open"`
}

// goTo switches view. Leaving the room analyzer resets any analysis in flight.
func (s *Session) goTo(v View) {
	if s.Navigation.View == ViewRoomAnalyzer && v != ViewRoomAnalyzer {
		s.Analysis.Reset()
	}
	s.Navigation.View = v
}

// SelectProduct opens the detail screen for productID
func (s *Session) SelectProduct(productID int) {
	s.Navigation.SelectedProductID = productID
	s.goTo(ViewDetail)
}

// BackToList returns from detail and clears the selection
func (s *Session) BackToList() {
	s.Navigation.SelectedProductID = 0
	s.goTo(ViewList)
}

// OpenCart shows the basket
func (s *Session) OpenCart() { s.goTo(ViewBasket) }

// BackFromBasket returns to the list
func (s *Session) BackFromBasket() { s.goTo(ViewList) }

// Checkout moves from basket to the shipping form
func (s *Session) Checkout() { s.goTo(ViewCheckout) }

// BackFromCheckout returns to the basket
func (s *Session) BackFromCheckout() { s.goTo(ViewBasket) }

// ProceedToPayment captures the shipping form and moves to payment
func (s *Session) ProceedToPayment(info CustomerInfo) error {
	info = info.Normalize()
	if err := info.Validate(); err != nil {
		return err
	}
	s.Customer = info
	s.goTo(ViewPayment)
	return nil
}

// BackFromPayment returns to the shipping form
func (s *Session) BackFromPayment() { s.goTo(ViewCheckout) }

// ProceedToConfirmation moves to the order review screen
func (s *Session) ProceedToConfirmation() { s.goTo(ViewConfirmation) }

// BackFromConfirmation returns to payment
func (s *Session) BackFromConfirmation() { s.goTo(ViewPayment) }

// CompletePurchase records the order, empties the cart and shows the receipt
func (s *Session) CompletePurchase(now time.Time) *Order {
	order := NewOrder(s.Cart, s.Customer, now)
	s.LastOrder = order
	s.Cart.Clear()
	s.goTo(ViewOrderConfirmation)
	return order
}

// ContinueShopping starts over after a purchase
func (s *Session) ContinueShopping() {
	s.Navigation.SelectedProductID = 0
	s.Customer = CustomerInfo{}
	s.LastOrder = nil
	s.goTo(ViewList)
}

// NavigateMenu jumps to a menu screen and closes the menu
func (s *Session) NavigateMenu(v View) {
	s.Navigation.SelectedProductID = 0
	s.Navigation.NavOpen = false
	s.goTo(v)
}

// OpenRoomAnalyzer shows the room analyzer
func (s *Session) OpenRoomAnalyzer() { s.goTo(ViewRoomAnalyzer) }

// SetNavOpen opens or closes the side menu
func (s *Session) SetNavOpen(open bool) { s.Navigation.NavOpen = open }
