package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidPriceRange = errors.New("invalid price range")
	ErrInvalidSortOption = errors.New("invalid sort option")
	ErrInvalidFilter     = errors.New("invalid filter")
)

// Specs holds the technical specification shown on the detail screen
type Specs struct {
	Power              string `json:"power" yaml:"power"`
	ColorTemperature   string `json:"color_temperature" yaml:"color_temperature"`
	Lumens             string `json:"lumens" yaml:"lumens"`
	InstallationMethod string `json:"installation_method" yaml:"installation_method"`
	Voltage            string `json:"voltage" yaml:"voltage"`
	EnergyRating       string `json:"energy_rating" yaml:"energy_rating"`
	Dimensions         string `json:"dimensions" yaml:"dimensions"`
}

// Product is an immutable catalog entry
type Product struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Price       string   `json:"price" yaml:"price"`
	PriceValue  int64    `json:"price_value" yaml:"price_value"`
	Brand       string   `json:"brand" yaml:"brand"`
	Images      []string `json:"images" yaml:"images"`
	Description string   `json:"description" yaml:"description"`
	Location    string   `json:"location" yaml:"location"`
	Features    []string `json:"features" yaml:"features"`
	Room        string   `json:"room" yaml:"room"`
	Style       string   `json:"style" yaml:"style"`
	Specs       Specs    `json:"specs" yaml:"specs"`
}

// Thumbnail returns the first image, used for cart lines and overlays
func (p *Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductRepository defines read access to the static catalog
type ProductRepository interface {
	FindByID(ctx context.Context, id int) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Count(ctx context.Context) (int, error)
}
