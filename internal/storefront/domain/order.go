package domain

import (
	"strconv"
	"time"
)

// Order is the receipt produced by completing a purchase
type Order struct {
	Number    string       `json:"number"`
	Items     []CartItem   `json:"items"`
	ItemCount int          `json:"item_count"`
	Total     int64        `json:"total"`
	Customer  CustomerInfo `json:"customer"`
	PlacedAt  time.Time    `json:"placed_at"`
}

// NewOrder snapshots the cart and customer at t
func NewOrder(cart Cart, customer CustomerInfo, t time.Time) *Order {
	return &Order{
		Number:    OrderNumber(t),
		Items:     cart.clone().Items,
		ItemCount: cart.Count(),
		Total:     cart.Total(),
		Customer:  customer,
		PlacedAt:  t.UTC(),
	}
}

// OrderNumber is "LS" followed by the last 8 digits of t in Unix milliseconds
func OrderNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "LS" + ms
}

func (o *Order) clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = make([]CartItem, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}
