package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/planovahq/planova-api/internal/models"
	pkghttp "github.com/planovahq/planova-api/pkg/http"
)

// PackageServiceInterface defines the interface for custom package requests
type PackageServiceInterface interface {
	SubmitPackage(ctx context.Context, pkg *models.CustomPackage) (*models.CustomPackage, error)
	ListPackages(ctx context.Context) ([]*models.CustomPackage, error)
}

// PackageHandler handles custom decoration package requests
type PackageHandler struct {
	service PackageServiceInterface
}

func NewPackageHandler(service PackageServiceInterface) *PackageHandler {
	return &PackageHandler{service: service}
}

// CustomPackageRequest represents the package builder form body
type CustomPackageRequest struct {
	ColorPalette        string `json:"colorPalette" validate:"max=200"`
	Flowers             string `json:"flowers" validate:"max=200"`
	ArchEntrance        string `json:"archEntrance" validate:"max=200"`
	Lighting            string `json:"lighting" validate:"max=200"`
	TableCenterpieces   string `json:"tableCenterpieces" validate:"max=200"`
	BackdropDesign      string `json:"backdropDesign" validate:"max=200"`
	FabricDraping       string `json:"fabricDraping" validate:"max=200"`
	PhotoBooth          string `json:"photoBooth" validate:"max=200"`
	SpecialInstructions string `json:"specialInstructions" validate:"max=2000"`
}

// Submit stores a custom package request and notifies the team
func (h *PackageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CustomPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.SubmitPackage(r.Context(), &models.CustomPackage{
		ColorPalette:        req.ColorPalette,
		Flowers:             req.Flowers,
		ArchEntrance:        req.ArchEntrance,
		Lighting:            req.Lighting,
		TableCenterpieces:   req.TableCenterpieces,
		BackdropDesign:      req.BackdropDesign,
		FabricDraping:       req.FabricDraping,
		PhotoBooth:          req.PhotoBooth,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Custom package request received. We will send you a quote soon.",
		"package": created,
	})
}

// List returns every submitted package request, newest first
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.ListPackages(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if packages == nil {
		packages = []*models.CustomPackage{}
	}
	pkghttp.WriteJSON(w, http.StatusOK, packages)
}
