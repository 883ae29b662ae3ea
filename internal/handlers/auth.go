package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/planovahq/planova-api/internal/auth"
	"github.com/planovahq/planova-api/internal/models"
	"github.com/planovahq/planova-api/internal/services"
	pkghttp "github.com/planovahq/planova-api/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*services.AuthResponse, error)
	Login(ctx context.Context, email, password, totpCode string) (*services.AuthResponse, error)
	BeginTwoFactorEnrollment(ctx context.Context, accountID string) (*services.EnrollmentResponse, error)
	ConfirmTwoFactorEnrollment(ctx context.Context, accountID, totpCode string) error
}

// AuthHandler handles registration, login and two-factor HTTP requests
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Request DTOs

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

// LoginRequest represents the request body for login. Token carries the
// TOTP code for accounts with two-factor enabled.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Token    string `json:"token,omitempty"`
}

// VerifyTwoFactorRequest represents the request body for 2FA confirmation
type VerifyTwoFactorRequest struct {
	Token string `json:"token" validate:"required,len=6"`
}

// twoFactorChallengeResponse tells the client to retry login with a code.
type twoFactorChallengeResponse struct {
	Message     string `json:"message"`
	Requires2FA bool   `json:"requires_2fa"`
}

// Register handles account registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.service.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			pkghttp.WriteConflict(w, "Email already registered")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles credential and optional TOTP verification
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.service.Login(r.Context(), req.Email, req.Password, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTwoFactorRequired):
			pkghttp.WriteJSON(w, http.StatusUnauthorized, twoFactorChallengeResponse{
				Message:     models.ErrTwoFactorRequired.Error(),
				Requires2FA: true,
			})
		case errors.Is(err, models.ErrInvalidCredentials):
			pkghttp.WriteUnauthorized(w, models.ErrInvalidCredentials.Error())
		case errors.Is(err, models.ErrInvalidTwoFactorCode):
			pkghttp.WriteUnauthorized(w, models.ErrInvalidTwoFactorCode.Error())
		default:
			writeServiceError(w, err)
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// EnableTwoFactor starts 2FA enrollment for the authenticated account
func (h *AuthHandler) EnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSessionFromContext(r)
	if session == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.BeginTwoFactorEnrollment(r.Context(), session.AccountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// VerifyTwoFactor confirms 2FA enrollment with a code from the authenticator
func (h *AuthHandler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSessionFromContext(r)
	if session == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req VerifyTwoFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.ConfirmTwoFactorEnrollment(r.Context(), session.AccountID, req.Token); err != nil {
		switch {
		case errors.Is(err, models.ErrTwoFactorNotEnrolled):
			pkghttp.WriteBadRequest(w, models.ErrTwoFactorNotEnrolled.Error())
		case errors.Is(err, models.ErrInvalidTwoFactorCode):
			pkghttp.WriteUnauthorized(w, models.ErrInvalidTwoFactorCode.Error())
		default:
			writeServiceError(w, err)
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "2FA enabled successfully"})
}
