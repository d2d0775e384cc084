package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/internal/storefront/usecase/command"
	"github.com/tair/lightspace/internal/storefront/usecase/query"
)

// CreateSession handles POST /api/sessions
func (h *StorefrontHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.handlers.CreateSession.Handle(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusCreated, "Session created successfully", s)
}

// GetSession handles GET /api/sessions/{id}
func (h *StorefrontHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.handlers.GetSession.Handle(r.Context(), query.GetSessionQuery{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    view,
	})
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *StorefrontHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	cmd := command.DeleteSessionCommand{SessionID: mux.Vars(r)["id"]}
	if err := h.handlers.DeleteSession.Handle(r.Context(), cmd); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Session ended successfully",
	})
}

// BrowseProducts handles GET /api/sessions/{id}/products
func (h *StorefrontHandler) BrowseProducts(w http.ResponseWriter, r *http.Request) {
	res, err := h.handlers.BrowseProducts.Handle(r.Context(), query.BrowseProductsQuery{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    res,
	})
}

// UpdateBrowse handles PUT /api/sessions/{id}/browse
func (h *StorefrontHandler) UpdateBrowse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Search  string                `json:"search"`
		Sort    string                `json:"sort"`
		Filters catalog.FilterOptions `json:"filters"`
	}

	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	s, err := h.handlers.UpdateBrowse.Handle(r.Context(), command.UpdateBrowseCommand{
		SessionID: mux.Vars(r)["id"],
		Search:    req.Search,
		Sort:      req.Sort,
		Filters:   req.Filters,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    s.Browse,
	})
}

// ToggleFilter handles POST /api/sessions/{id}/browse/filters/{dimension}
func (h *StorefrontHandler) ToggleFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}

	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	vars := mux.Vars(r)
	s, err := h.handlers.ToggleFilter.Handle(r.Context(), command.ToggleFilterCommand{
		SessionID: vars["id"],
		Dimension: vars["dimension"],
		Value:     req.Value,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    s.Browse,
	})
}

// ToggleFavorite handles POST /api/sessions/{id}/favorites/{product_id}
func (h *StorefrontHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt(r, "product_id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	favorite, s, err := h.handlers.ToggleFavorite.Handle(r.Context(), command.ToggleFavoriteCommand{
		SessionID: mux.Vars(r)["id"],
		ProductID: productID,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"product_id":  productID,
			"is_favorite": favorite,
			"favorites":   s.Favorites,
		},
	})
}

// GetCart handles GET /api/sessions/{id}/cart
func (h *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.handlers.GetCart.Handle(r.Context(), query.GetCartQuery{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    cart,
	})
}

// AddToCart handles POST /api/sessions/{id}/cart/items
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}

	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	res, err := h.handlers.AddToCart.Handle(r.Context(), command.AddToCartCommand{
		SessionID: mux.Vars(r)["id"],
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	view, err := h.sessionView(r.Context(), res.Session)
	if err != nil {
		respondError(w, r, err)
		return
	}

	message := "Product added to cart"
	if !res.Added {
		message = "Nothing added to cart"
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data: map[string]interface{}{
			"added":   res.Added,
			"cart":    query.NewCartView(res.Session.Cart),
			"session": view,
		},
	})
}

// UpdateQuantity handles PATCH /api/sessions/{id}/cart/items/{product_id}
func (h *StorefrontHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt(r, "product_id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	var req struct {
		Quantity *int `json:"quantity"`
	}

	if err := decodeBody(r, &req); err != nil || req.Quantity == nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	s, err := h.handlers.UpdateQuantity.Handle(r.Context(), command.UpdateQuantityCommand{
		SessionID: mux.Vars(r)["id"],
		ProductID: productID,
		Quantity:  *req.Quantity,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Quantity updated successfully",
		Data:    query.NewCartView(s.Cart),
	})
}

// Navigate handles POST /api/sessions/{id}/navigation/{action}
func (h *StorefrontHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int                 `json:"product_id"`
		Screen    string              `json:"screen"`
		Customer  domain.CustomerInfo `json:"customer"`
	}

	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	vars := mux.Vars(r)
	res, err := h.handlers.Navigate.Handle(r.Context(), command.NavigateCommand{
		SessionID: vars["id"],
		Action:    vars["action"],
		ProductID: req.ProductID,
		Screen:    req.Screen,
		Customer:  req.Customer,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	if res.Order == nil {
		h.respondSession(w, r, http.StatusOK, "", res.Session)
		return
	}

	view, err := h.sessionView(r.Context(), res.Session)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order placed successfully",
		Data: map[string]interface{}{
			"order":   res.Order,
			"session": view,
		},
	})
}

// UploadRoomImage handles POST /api/sessions/{id}/analyzer/image.
// The photo is a multipart "image" field; only its metadata is kept.
func (h *StorefrontHandler) UploadRoomImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, command.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid multipart upload",
		})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Missing image field",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		sniff := make([]byte, 512)
		n, _ := io.ReadFull(file, sniff)
		contentType = http.DetectContentType(sniff[:n])
	}

	ref, s, err := h.handlers.UploadImage.Handle(r.Context(), command.UploadRoomImageCommand{
		SessionID:   mux.Vars(r)["id"],
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Room image uploaded",
		Data: map[string]interface{}{
			"image":    ref,
			"analysis": s.Analysis,
		},
	})
}

// StartAnalysis handles POST /api/sessions/{id}/analyzer/analyze
func (h *StorefrontHandler) StartAnalysis(w http.ResponseWriter, r *http.Request) {
	s, err := h.handlers.StartAnalysis.Handle(r.Context(), command.StartAnalysisCommand{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondSession(w, r, http.StatusAccepted, "Room analysis started", s)
}
