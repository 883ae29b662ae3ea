package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/planovahq/planova-api/internal/models"
	pkghttp "github.com/planovahq/planova-api/pkg/http"
)

// ContactServiceInterface defines the interface for contact submissions
type ContactServiceInterface interface {
	SubmitFeedback(ctx context.Context, name, email, message string) (*models.ContactSubmission, error)
}

// ContactHandler handles contact form submissions
type ContactHandler struct {
	service ContactServiceInterface
}

func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// ContactRequest represents the contact form body
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// Submit stores a contact form submission
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if _, err := h.service.SubmitFeedback(r.Context(), req.Name, req.Email, req.Message); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Thank you for reaching out. Our team will get back to you shortly.",
	})
}
