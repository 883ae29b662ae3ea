package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/planovahq/planova-api/internal/models"
	pkghttp "github.com/planovahq/planova-api/pkg/http"
)

// CartServiceInterface defines the interface for cart operations
type CartServiceInterface interface {
	AddToCart(ctx context.Context, services, addons []string) (*models.CartSelection, error)
	GetCart(ctx context.Context) ([]*models.CartSelection, error)
	ClearCart(ctx context.Context) error
}

// CartHandler handles cart HTTP requests
type CartHandler struct {
	service CartServiceInterface
}

func NewCartHandler(service CartServiceInterface) *CartHandler {
	return &CartHandler{service: service}
}

// AddToCartRequest represents the cart form body
type AddToCartRequest struct {
	Services []string `json:"services" validate:"max=50,dive,max=200"`
	Addons   []string `json:"addons" validate:"max=50,dive,max=200"`
}

// Add stores a selection of services and addons
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.AddToCart(r.Context(), req.Services, req.Addons)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Added to cart",
		"cart":    created,
	})
}

// List returns every selection currently in the cart
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	selections, err := h.service.GetCart(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if selections == nil {
		selections = []*models.CartSelection{}
	}
	pkghttp.WriteJSON(w, http.StatusOK, selections)
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCart(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}
