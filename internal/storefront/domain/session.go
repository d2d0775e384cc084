package domain

import (
	"context"
	"time"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
)

// BrowseState is the search term, filters and sort applied to the list
type BrowseState struct {
	Search  string                `json:"search"`
	Sort    catalog.SortOption    `json:"sort"`
	Filters catalog.FilterOptions `json:"filters"`
}

// Session is the complete state of one shopper. It is a plain value that
// round-trips through JSON so any SessionRepository can store it.
type Session struct {
	ID         string        `json:"id"`
	Cart       Cart          `json:"cart"`
	Favorites  FavoriteSet   `json:"favorites"`
	Browse     BrowseState   `json:"browse"`
	Navigation Navigation    `json:"navigation"`
	Customer   CustomerInfo  `json:"customer"`
	Overlay    Overlay       `json:"overlay"`
	Analysis   AnalysisState `json:"analysis"`
	LastOrder  *Order        `json:"last_order,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewSession returns a session on the list view with an empty cart
func NewSession(id string, now time.Time) *Session {
	now = now.UTC()
	return &Session{
		ID:         id,
		Cart:       NewCart(),
		Favorites:  FavoriteSet{},
		Browse:     BrowseState{Sort: catalog.SortDefault},
		Navigation: Navigation{View: ViewList},
		Analysis:   AnalysisState{Status: AnalysisIdle},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy sharing no slices or pointers with s
func (s *Session) Clone() *Session {
	c := *s
	c.Cart = s.Cart.clone()
	c.Favorites = append(FavoriteSet{}, s.Favorites...)
	c.Browse.Filters.Room = cloneStrings(s.Browse.Filters.Room)
	c.Browse.Filters.Style = cloneStrings(s.Browse.Filters.Style)
	c.Analysis = s.Analysis.clone()
	c.LastOrder = s.LastOrder.clone()
	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

// SessionRepository stores sessions. Update applies fn atomically: when fn
// returns an error nothing is written.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(s *Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}
