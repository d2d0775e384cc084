package repository

import (
	"context"
	"fmt"

	"github.com/tair/lightspace/internal/catalog/domain"
)

// StaticProductRepository serves a catalog fixed at construction time.
// Callers always receive copies, so the catalog cannot be mutated.
type StaticProductRepository struct {
	products []domain.Product
	byID     map[int]int
}

// NewStaticProductRepository validates products and freezes them in order
func NewStaticProductRepository(products []domain.Product) (*StaticProductRepository, error) {
	r := &StaticProductRepository{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}

	for i := range products {
		p := cloneProduct(products[i])
		if err := validateProduct(&p); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate product id %d", i, p.ID)
		}
		if p.Price == "" {
			p.Price = domain.FormatWon(p.PriceValue)
		}
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p)
	}

	return r, nil
}

// NewSeedProductRepository returns the built-in catalog
func NewSeedProductRepository() *StaticProductRepository {
	r, err := NewStaticProductRepository(SeedProducts())
	if err != nil {
		panic(fmt.Sprintf("invalid seed catalog: %v", err))
	}
	return r
}

func (r *StaticProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	p := cloneProduct(r.products[idx])
	return &p, nil
}

func (r *StaticProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	for i := range r.products {
		out[i] = cloneProduct(r.products[i])
	}
	return out, nil
}

func (r *StaticProductRepository) Count(ctx context.Context) (int, error) {
	return len(r.products), nil
}

func validateProduct(p *domain.Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("product id must be positive, got %d", p.ID)
	}
	if p.Name == "" {
		return fmt.Errorf("product %d: name is required", p.ID)
	}
	if p.PriceValue < 0 {
		return fmt.Errorf("product %d: price cannot be negative", p.ID)
	}
	if len(p.Images) == 0 {
		return fmt.Errorf("product %d: at least one image is required", p.ID)
	}
	return nil
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Features = append([]string(nil), p.Features...)
	return p
}
