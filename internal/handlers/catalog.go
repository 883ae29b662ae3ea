package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/planovahq/planova-api/internal/models"
	pkghttp "github.com/planovahq/planova-api/pkg/http"
)

// CatalogServiceInterface defines the interface for the service catalog
type CatalogServiceInterface interface {
	ListServices(ctx context.Context) ([]*models.Service, error)
	AddService(ctx context.Context, name, description string, price float64, featured bool, category string) (*models.Service, error)
}

// CatalogHandler serves the event service catalog
type CatalogHandler struct {
	service CatalogServiceInterface
}

func NewCatalogHandler(service CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListServices returns every service on offer
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if services == nil {
		services = []*models.Service{}
	}
	pkghttp.WriteJSON(w, http.StatusOK, services)
}

// AddServiceRequest represents the body for adding a catalog entry
type AddServiceRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=2000"`
	Price       *float64 `json:"price" validate:"required"`
	Featured    bool     `json:"featured"`
	Category    string   `json:"category" validate:"max=100"`
}

// AddService adds a new service to the catalog
func (h *CatalogHandler) AddService(w http.ResponseWriter, r *http.Request) {
	var req AddServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.AddService(r.Context(), req.Name, req.Description, *req.Price, req.Featured, req.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Service created successfully",
		"service": created,
	})
}
