package domain

import (
	"fmt"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
)

// CartItem is a quantity of one product with the product details captured
// at the time it was first added
type CartItem struct {
	ProductID  int    `json:"product_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	PriceValue int64  `json:"price_value"`
	Image      string `json:"image"`
	Quantity   int    `json:"quantity"`
}

// Subtotal returns PriceValue * Quantity
func (i CartItem) Subtotal() int64 {
	return i.PriceValue * int64(i.Quantity)
}

// Cart holds at most one item per product, in the order first added
type Cart struct {
	Items []CartItem `json:"items"`
}

// NewCart returns an empty cart
func NewCart() Cart {
	return Cart{Items: []CartItem{}}
}

// Add puts qty of p in the cart, summing onto an existing line.
// A non-positive qty counts as 1. It returns the quantity added.
func (c *Cart) Add(p *catalog.Product, qty int) int {
	if qty <= 0 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += qty
			return qty
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		PriceValue: p.PriceValue,
		Image:      p.Thumbnail(),
		Quantity:   qty,
	})
	return qty
}

// UpdateQuantity sets an absolute quantity; zero removes the line.
// Unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if qty == 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = qty
		}
		return nil
	}
	return nil
}

// Find returns the line for productID
func (c *Cart) Find(productID int) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// Count is the total quantity across all lines
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of line subtotals
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

func (c Cart) clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
