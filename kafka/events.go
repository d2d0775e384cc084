package kafka

import "time"

// OrderLine is one purchased product in an order event
type OrderLine struct {
	ProductID  int    `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceValue int64  `json:"price_value"`
}

// OrderCompletedEvent is emitted when a session completes a purchase
type OrderCompletedEvent struct {
	EventID     string      `json:"event_id"`
	EventType   string      `json:"event_type"`
	SessionID   string      `json:"session_id"`
	OrderNumber string      `json:"order_number"`
	Lines       []OrderLine `json:"lines"`
	ItemCount   int         `json:"item_count"`
	Total       int64       `json:"total"`
	Currency    string      `json:"currency"`
	City        string      `json:"city"`
	Country     string      `json:"country"`
	PlacedAt    time.Time   `json:"placed_at"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderCompleted = "order.completed"
)

// Kafka topics
const (
	TopicOrderCompleted = "order-completed"
)

// CurrencyKRW is the only currency the catalog is priced in
const CurrencyKRW = "KRW"
