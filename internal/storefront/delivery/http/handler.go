package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	catalogquery "github.com/tair/lightspace/internal/catalog/usecase/query"
	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/internal/storefront/metrics"
	"github.com/tair/lightspace/internal/storefront/usecase/command"
	"github.com/tair/lightspace/internal/storefront/usecase/query"
	"github.com/tair/lightspace/pkg/logger"
)

// Handlers groups the CQRS handlers behind the HTTP API
type Handlers struct {
	// Command handlers
	CreateSession  *command.CreateSessionHandler
	DeleteSession  *command.DeleteSessionHandler
	AddToCart      *command.AddToCartHandler
	UpdateQuantity *command.UpdateQuantityHandler
	ToggleFavorite *command.ToggleFavoriteHandler
	UpdateBrowse   *command.UpdateBrowseHandler
	ToggleFilter   *command.ToggleFilterHandler
	Navigate       *command.NavigateHandler
	UploadImage    *command.UploadRoomImageHandler
	StartAnalysis  *command.StartAnalysisHandler

	// Query handlers
	ListProducts     *catalogquery.ListProductsHandler
	GetProduct       *catalogquery.GetProductHandler
	GetFilterOptions *catalogquery.GetFilterOptionsHandler
	GetSession       *query.GetSessionHandler
	BrowseProducts   *query.BrowseProductsHandler
	GetCart          *query.GetCartHandler
}

// StorefrontHandler handles HTTP requests for the storefront using CQRS pattern
type StorefrontHandler struct {
	handlers Handlers
	sessions domain.SessionRepository
	products catalog.ProductRepository
	metrics  *metrics.Metrics
	timeout  time.Duration
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(
	handlers Handlers,
	sessions domain.SessionRepository,
	products catalog.ProductRepository,
	m *metrics.Metrics,
) *StorefrontHandler {
	return &StorefrontHandler{
		handlers: handlers,
		sessions: sessions,
		products: products,
		metrics:  m,
		timeout:  30 * time.Second,
	}
}

// WithTimeout sets the request timeout applied by the middleware chain
func (h *StorefrontHandler) WithTimeout(d time.Duration) *StorefrontHandler {
	if d > 0 {
		h.timeout = d
	}
	return h
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *StorefrontHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		h.metrics.ObserveRequest(r.Method, endpoint, rw.statusCode, time.Since(start))
	}
}

// GetMiddlewareConfig returns middleware configuration
func (h *StorefrontHandler) GetMiddlewareConfig() *MiddlewareConfig {
	cfg := DefaultMiddlewareConfig()
	cfg.TimeoutDuration = h.timeout
	return cfg
}

// RegisterRoutes registers all storefront routes
func (h *StorefrontHandler) RegisterRoutes(router *mux.Router) {
	// Catalog (stateless)
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/filters", h.metricsMiddleware("/api/products/filters", h.GetFilterOptions)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")

	// Sessions
	router.HandleFunc("/api/sessions", h.metricsMiddleware("/api/sessions", h.CreateSession)).Methods("POST")
	router.HandleFunc("/api/sessions/{id}", h.metricsMiddleware("/api/sessions/{id}", h.GetSession)).Methods("GET")
	router.HandleFunc("/api/sessions/{id}", h.metricsMiddleware("/api/sessions/{id}", h.DeleteSession)).Methods("DELETE")

	// Browsing
	router.HandleFunc("/api/sessions/{id}/products", h.metricsMiddleware("/api/sessions/{id}/products", h.BrowseProducts)).Methods("GET")
	router.HandleFunc("/api/sessions/{id}/browse", h.metricsMiddleware("/api/sessions/{id}/browse", h.UpdateBrowse)).Methods("PUT")
	router.HandleFunc("/api/sessions/{id}/browse/filters/{dimension}", h.metricsMiddleware("/api/sessions/{id}/browse/filters/{dimension}", h.ToggleFilter)).Methods("POST")
	router.HandleFunc("/api/sessions/{id}/favorites/{product_id}", h.metricsMiddleware("/api/sessions/{id}/favorites/{product_id}", h.ToggleFavorite)).Methods("POST")

	// Cart
	router.HandleFunc("/api/sessions/{id}/cart", h.metricsMiddleware("/api/sessions/{id}/cart", h.GetCart)).Methods("GET")
	router.HandleFunc("/api/sessions/{id}/cart/items", h.metricsMiddleware("/api/sessions/{id}/cart/items", h.AddToCart)).Methods("POST")
	router.HandleFunc("/api/sessions/{id}/cart/items/{product_id}", h.metricsMiddleware("/api/sessions/{id}/cart/items/{product_id}", h.UpdateQuantity)).Methods("PATCH")

	// Navigation
	router.HandleFunc("/api/sessions/{id}/navigation/{action}", h.metricsMiddleware("/api/sessions/{id}/navigation/{action}", h.Navigate)).Methods("POST")

	// Room analyzer
	router.HandleFunc("/api/sessions/{id}/analyzer/image", h.metricsMiddleware("/api/sessions/{id}/analyzer/image", h.UploadRoomImage)).Methods("POST")
	router.HandleFunc("/api/sessions/{id}/analyzer/analyze", h.metricsMiddleware("/api/sessions/{id}/analyzer/analyze", h.StartAnalysis)).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *StorefrontHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.sessions.Ping(ctx); err != nil {
			logger.Error(r.Context()).Err(err).Msg("Session store ping failed")
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Session store unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Storefront service is healthy",
		})
	}).Methods("GET")
}

// sessionView renders s for a response
func (h *StorefrontHandler) sessionView(ctx context.Context, s *domain.Session) (*query.SessionView, error) {
	return query.BuildSessionView(ctx, h.products, s)
}

// respondSession writes the session snapshot with the given status
func (h *StorefrontHandler) respondSession(w http.ResponseWriter, r *http.Request, status int, message string, s *domain.Session) {
	view, err := h.sessionView(r.Context(), s)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, status, Response{
		Success: true,
		Message: message,
		Data:    view,
	})
}

// respondError maps domain errors onto status codes
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case domain.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
	default:
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Internal server error",
		})
	}
}

// decodeBody decodes an optional JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// pathInt parses an integer path variable
func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
