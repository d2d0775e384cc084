package domain

import (
	"fmt"
	"strings"
)

// PriceRange is one of the fixed price buckets
type PriceRange string

const (
	PriceAny        PriceRange = ""
	PriceUnder50k   PriceRange = "under-50k"
	Price50kTo100k  PriceRange = "50k-100k"
	Price100kTo200k PriceRange = "100k-200k"
	PriceOver200k   PriceRange = "over-200k"
)

// PriceBucket describes a half-open interval [Min, Max). Max 0 means unbounded.
type PriceBucket struct {
	Value PriceRange `json:"value"`
	Label string     `json:"label"`
	Min   int64      `json:"min"`
	Max   int64      `json:"max,omitempty"`
}

// PriceBuckets lists the buckets in display order
var PriceBuckets = []PriceBucket{
	{Value: PriceUnder50k, Label: "Under ₩50,000", Min: 0, Max: 50000},
	{Value: Price50kTo100k, Label: "₩50,000 - ₩100,000", Min: 50000, Max: 100000},
	{Value: Price100kTo200k, Label: "₩100,000 - ₩200,000", Min: 100000, Max: 200000},
	{Value: PriceOver200k, Label: "₩200,000 and over", Min: 200000},
}

// Bucket returns the interval for r. PriceAny reports ok=false.
func (r PriceRange) Bucket() (PriceBucket, bool) {
	for _, b := range PriceBuckets {
		if b.Value == r {
			return b, true
		}
	}
	return PriceBucket{}, false
}

// Validate accepts PriceAny or a known bucket
func (r PriceRange) Validate() error {
	if r == PriceAny {
		return nil
	}
	if _, ok := r.Bucket(); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPriceRange, string(r))
	}
	return nil
}

// Contains reports whether price falls in the bucket
func (b PriceBucket) Contains(price int64) bool {
	if price < b.Min {
		return false
	}
	return b.Max == 0 || price < b.Max
}

// SortOption orders the visible list
type SortOption string

const (
	SortDefault SortOption = "default"
	SortAZ      SortOption = "a-z"
	SortPrice   SortOption = "price"
)

// ParseSortOption maps "" to SortDefault and rejects unknown keys
func ParseSortOption(s string) (SortOption, error) {
	switch SortOption(s) {
	case "", SortDefault:
		return SortDefault, nil
	case SortAZ, SortPrice:
		return SortOption(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortOption, s)
}

// FilterOptions is the combined room/style/price selection.
// Dimensions AND together; selections within a dimension OR together.
type FilterOptions struct {
	Room       []string   `json:"room"`
	Style      []string   `json:"style"`
	PriceRange PriceRange `json:"price_range,omitempty"`
}

// IsEmpty reports whether no constraint is active
func (f FilterOptions) IsEmpty() bool {
	return len(f.Room) == 0 && len(f.Style) == 0 && f.PriceRange == PriceAny
}

// Validate checks the price bucket
func (f FilterOptions) Validate() error {
	return f.PriceRange.Validate()
}

// Matches evaluates every active predicate against p
func (f FilterOptions) Matches(p *Product) bool {
	if len(f.Room) > 0 && !contains(f.Room, p.Room) {
		return false
	}
	if len(f.Style) > 0 && !contains(f.Style, p.Style) {
		return false
	}
	if b, ok := f.PriceRange.Bucket(); ok && !b.Contains(p.PriceValue) {
		return false
	}
	return true
}

// MatchesSearch is a case-insensitive substring match on the name
func MatchesSearch(p *Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}

// Filter dimensions accepted by Toggle
const (
	DimensionRoom  = "room"
	DimensionStyle = "style"
	DimensionPrice = "price"
)

// Toggle flips one value in the named dimension, the way a filter chip does
func (f FilterOptions) Toggle(dimension, value string) (FilterOptions, error) {
	if value == "" {
		return f, fmt.Errorf("%w: empty %s value", ErrInvalidFilter, dimension)
	}

	switch dimension {
	case DimensionRoom:
		return f.ToggleRoom(value), nil
	case DimensionStyle:
		return f.ToggleStyle(value), nil
	case DimensionPrice:
		r := PriceRange(value)
		if err := r.Validate(); err != nil {
			return f, err
		}
		return f.TogglePrice(r), nil
	}
	return f, fmt.Errorf("%w: unknown dimension %q", ErrInvalidFilter, dimension)
}

// ToggleRoom flips a room selection, keeping selection order
func (f FilterOptions) ToggleRoom(room string) FilterOptions {
	f.Room = toggle(f.Room, room)
	return f
}

// ToggleStyle flips a style selection, keeping selection order
func (f FilterOptions) ToggleStyle(style string) FilterOptions {
	f.Style = toggle(f.Style, style)
	return f
}

// TogglePrice selects r, or clears it when r is already selected
func (f FilterOptions) TogglePrice(r PriceRange) FilterOptions {
	if f.PriceRange == r {
		f.PriceRange = PriceAny
	} else {
		f.PriceRange = r
	}
	return f
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func toggle(list []string, v string) []string {
	out := make([]string, 0, len(list)+1)
	found := false
	for _, s := range list {
		if s == v {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, v)
	}
	return out
}
