package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the Storefront Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List products
// @Description Search, filter and sort the catalog. room and style may repeat.
// @Tags Catalog
// @Produce json
// @Param search query string false "Case-insensitive name search"
// @Param room query []string false "Room filter" collectionFormat(multi)
// @Param style query []string false "Style filter" collectionFormat(multi)
// @Param price query string false "Price bucket" Enums(under-50k, 50k-100k, 100k-200k, over-200k)
// @Param sort query string false "Sort order" Enums(default, a-z, price)
// @Success 200 {object} object{success=bool,data=object{products=array,total=int,catalog_size=int,filters_applied=bool}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *StorefrontHandler) ListProductsDoc() {}

// GetFilterOptions godoc
// @Summary Filter options
// @Description Rooms, styles, price buckets and sort options offered by the filter panel
// @Tags Catalog
// @Produce json
// @Success 200 {object} object{success=bool,data=object{rooms=[]string,styles=[]string,price_ranges=array,sort_options=[]string}}
// @Router /api/products/filters [get]
func (h *StorefrontHandler) GetFilterOptionsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *StorefrontHandler) GetProductDoc() {}

// CreateSession godoc
// @Summary Start a shopping session
// @Tags Sessions
// @Produce json
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Router /api/sessions [post]
func (h *StorefrontHandler) CreateSessionDoc() {}

// GetSession godoc
// @Summary Session snapshot
// @Description Current view, selected product, cart count, overlay, favorites and analyzer state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id} [get]
func (h *StorefrontHandler) GetSessionDoc() {}

// DeleteSession godoc
// @Summary End a session
// @Description Cancels pending overlay and analysis tasks and removes the session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id} [delete]
func (h *StorefrontHandler) DeleteSessionDoc() {}

// BrowseProducts godoc
// @Summary Visible product list
// @Description Catalog under the session's search, filters and sort, with favorite flags
// @Tags Browse
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/products [get]
func (h *StorefrontHandler) BrowseProductsDoc() {}

// UpdateBrowse godoc
// @Summary Set search, sort and filters
// @Tags Browse
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body object{search=string,sort=string,filters=object{room=[]string,style=[]string,price_range=string}} true "Browse state"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/browse [put]
func (h *StorefrontHandler) UpdateBrowseDoc() {}

// ToggleFilter godoc
// @Summary Toggle one filter value
// @Description Flips a room or style selection, or selects/clears a price bucket
// @Tags Browse
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param dimension path string true "room, style or price"
// @Param request body object{value=string} true "Value to toggle"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/browse/filters/{dimension} [post]
func (h *StorefrontHandler) ToggleFilterDoc() {}

// ToggleFavorite godoc
// @Summary Toggle a favorite
// @Tags Browse
// @Produce json
// @Param id path string true "Session ID"
// @Param product_id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object{product_id=int,is_favorite=bool,favorites=[]int}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/favorites/{product_id} [post]
func (h *StorefrontHandler) ToggleFavoriteDoc() {}

// GetCart godoc
// @Summary Get cart
// @Tags Cart
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} object{success=bool,data=object{items=array,count=int,total=int,formatted_total=string}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/cart [get]
func (h *StorefrontHandler) GetCartDoc() {}

// AddToCart godoc
// @Summary Add to cart
// @Description Adds a product and shows the added-to-cart overlay. product_id 0 adds the product open on the detail screen.
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body object{product_id=int,quantity=int} true "Cart line"
// @Success 200 {object} object{success=bool,message=string,data=object{added=bool,cart=object,session=object}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/cart/items [post]
func (h *StorefrontHandler) AddToCartDoc() {}

// UpdateQuantity godoc
// @Summary Update cart quantity
// @Description Sets a line quantity. 0 removes the line.
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param product_id path int true "Product ID"
// @Param request body object{quantity=int} true "Quantity"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/cart/items/{product_id} [patch]
func (h *StorefrontHandler) UpdateQuantityDoc() {}

// Navigate godoc
// @Summary Navigation transition
// @Description Applies one screen transition. select-product reads product_id, menu reads screen, proceed-to-payment reads customer.
// @Tags Navigation
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param action path string true "Action" Enums(select-product, back-to-list, open-cart, back-from-basket, checkout, back-from-checkout, proceed-to-payment, back-from-payment, proceed-to-confirmation, back-from-confirmation, complete-purchase, continue-shopping, menu, room-analyzer, open-menu, close-menu)
// @Param request body object{product_id=int,screen=string,customer=object{full_name=string,address=string,city=string,state=string,country=string,zip_code=string}} false "Transition arguments"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/navigation/{action} [post]
func (h *StorefrontHandler) NavigateDoc() {}

// UploadRoomImage godoc
// @Summary Upload a room photo
// @Tags Room Analyzer
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param image formData file true "Room photo"
// @Success 201 {object} object{success=bool,message=string,data=object{image=object,analysis=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/analyzer/image [post]
func (h *StorefrontHandler) UploadRoomImageDoc() {}

// StartAnalysis godoc
// @Summary Analyze the uploaded photo
// @Description Starts the analysis in the background. Poll the session for the result.
// @Tags Room Analyzer
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sessions/{id}/analyzer/analyze [post]
func (h *StorefrontHandler) StartAnalysisDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and session store connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *StorefrontHandler) HealthCheckDoc() {}
