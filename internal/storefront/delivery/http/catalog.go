package http

import (
	"net/http"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	catalogquery "github.com/tair/lightspace/internal/catalog/usecase/query"
)

// ListProducts handles GET /api/products
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	sortBy, err := catalog.ParseSortOption(params.Get("sort"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	q := catalogquery.ListProductsQuery{
		Search: params.Get("search"),
		Filters: catalog.FilterOptions{
			Room:       params["room"],
			Style:      params["style"],
			PriceRange: catalog.PriceRange(params.Get("price")),
		},
		Sort: sortBy,
	}

	list, err := h.handlers.ListProducts.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    list,
	})
}

// GetFilterOptions handles GET /api/products/filters
func (h *StorefrontHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.handlers.GetFilterOptions.Handle(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    opts,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	product, err := h.handlers.GetProduct.Handle(r.Context(), catalogquery.GetProductQuery{ID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
	})
}
