package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	pkghttp "github.com/planovahq/planova-api/pkg/http"
)

// ChatbotServiceInterface defines the interface for chatbot questions
type ChatbotServiceInterface interface {
	Ask(ctx context.Context, question string) (string, error)
}

// ChatbotHandler handles assistant questions
type ChatbotHandler struct {
	service ChatbotServiceInterface
}

func NewChatbotHandler(service ChatbotServiceInterface) *ChatbotHandler {
	return &ChatbotHandler{service: service}
}

// ChatbotRequest represents a question for the assistant
type ChatbotRequest struct {
	Message string `json:"message" validate:"required,min=1,max=500"`
}

// ChatbotResponse carries the assistant's answer
type ChatbotResponse struct {
	Reply string `json:"reply"`
}

// Ask answers a question about the event services
func (h *ChatbotHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req ChatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	reply, err := h.service.Ask(r.Context(), req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ChatbotResponse{Reply: reply})
}
