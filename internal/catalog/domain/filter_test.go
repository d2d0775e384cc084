package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBucket_HalfOpenBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		rng   PriceRange
		price int64
		want  bool
	}{
		{"under-50k includes 49999", PriceUnder50k, 49999, true},
		{"under-50k excludes 50000", PriceUnder50k, 50000, false},
		{"50k-100k includes 50000", Price50kTo100k, 50000, true},
		{"50k-100k excludes 100000", Price50kTo100k, 100000, false},
		{"100k-200k includes 100000", Price100kTo200k, 100000, true},
		{"100k-200k excludes 200000", Price100kTo200k, 200000, false},
		{"over-200k includes 200000", PriceOver200k, 200000, true},
		{"over-200k has no upper bound", PriceOver200k, 10_000_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := tt.rng.Bucket()
			assert.True(t, ok)
			assert.Equal(t, tt.want, b.Contains(tt.price))
		})
	}
}

func TestPriceRange_Validate(t *testing.T) {
	assert.NoError(t, PriceAny.Validate())
	assert.NoError(t, PriceOver200k.Validate())
	assert.ErrorIs(t, PriceRange("cheap").Validate(), ErrInvalidPriceRange)
}

func TestParseSortOption(t *testing.T) {
	s, err := ParseSortOption("")
	assert.NoError(t, err)
	assert.Equal(t, SortDefault, s)

	s, err = ParseSortOption("price")
	assert.NoError(t, err)
	assert.Equal(t, SortPrice, s)

	_, err = ParseSortOption("z-a")
	assert.ErrorIs(t, err, ErrInvalidSortOption)
}

func TestFilterOptions_Matches(t *testing.T) {
	lamp := &Product{Name: "Zen Table Lamp", Room: "Bedroom", Style: "Japandi", PriceValue: 89000}

	assert.True(t, FilterOptions{}.Matches(lamp))
	assert.True(t, FilterOptions{Room: []string{"Kitchen", "Bedroom"}}.Matches(lamp))
	assert.False(t, FilterOptions{Room: []string{"Kitchen"}}.Matches(lamp))
	assert.False(t, FilterOptions{Room: []string{"Bedroom"}, Style: []string{"Industrial"}}.Matches(lamp))
	assert.True(t, FilterOptions{Style: []string{"Japandi"}, PriceRange: Price50kTo100k}.Matches(lamp))
	assert.False(t, FilterOptions{PriceRange: PriceUnder50k}.Matches(lamp))
}

func TestMatchesSearch_CaseInsensitiveSubstring(t *testing.T) {
	p := &Product{Name: "Smart LED Bulb Set"}

	assert.True(t, MatchesSearch(p, ""))
	assert.True(t, MatchesSearch(p, "LED"))
	assert.True(t, MatchesSearch(p, "led b"))
	assert.False(t, MatchesSearch(p, "lamp"))
}

func TestFilterOptions_Toggles(t *testing.T) {
	f := FilterOptions{}.ToggleRoom("Bedroom").ToggleRoom("Kitchen").ToggleRoom("Bedroom")
	assert.Equal(t, []string{"Kitchen"}, f.Room)

	f = f.ToggleStyle("Modern")
	assert.Equal(t, []string{"Modern"}, f.Style)

	f = f.TogglePrice(PriceUnder50k)
	assert.Equal(t, PriceUnder50k, f.PriceRange)
	f = f.TogglePrice(PriceUnder50k)
	assert.Equal(t, PriceAny, f.PriceRange)
	assert.False(t, f.IsEmpty())
	assert.True(t, FilterOptions{}.IsEmpty())
}

func TestFilterOptions_Toggle(t *testing.T) {
	f, err := FilterOptions{}.Toggle(DimensionRoom, "Bedroom")
	require.NoError(t, err)
	f, err = f.Toggle(DimensionStyle, "Japandi")
	require.NoError(t, err)
	f, err = f.Toggle(DimensionPrice, string(Price50kTo100k))
	require.NoError(t, err)
	assert.Equal(t, FilterOptions{Room: []string{"Bedroom"}, Style: []string{"Japandi"}, PriceRange: Price50kTo100k}, f)

	f, err = f.Toggle(DimensionRoom, "Bedroom")
	require.NoError(t, err)
	assert.Empty(t, f.Room)

	tests := []struct {
		name      string
		dimension string
		value     string
		target    error
	}{
		{"unknown dimension", "color", "red", ErrInvalidFilter},
		{"empty value", DimensionRoom, "", ErrInvalidFilter},
		{"unknown bucket", DimensionPrice, "free", ErrInvalidPriceRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Toggle(tt.dimension, tt.value)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, f, got)
		})
	}
}
