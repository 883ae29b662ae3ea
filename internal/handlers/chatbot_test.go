package handlers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planovahq/planova-api/internal/handlers"
	"github.com/planovahq/planova-api/internal/models"
)

func TestChatbotAsk_Success(t *testing.T) {
	mockBot := &handlers.MockChatbotService{
		AskFunc: func(ctx context.Context, question string) (string, error) {
			return "We offer full catering for any event size.", nil
		},
	}

	handler := handlers.NewChatbotHandler(mockBot)
	req := handlers.NewTestRequest(t, "POST", "/api/chatbot", handlers.ChatbotRequest{
		Message: "Do you do catering?",
	})

	w := httptest.NewRecorder()
	handler.Ask(w, req)

	var resp handlers.ChatbotResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "We offer full catering for any event size.", resp.Reply)
}

func TestChatbotAsk_EmptyMessage(t *testing.T) {
	handler := handlers.NewChatbotHandler(&handlers.MockChatbotService{})
	req := handlers.NewTestRequest(t, "POST", "/api/chatbot", handlers.ChatbotRequest{})

	w := httptest.NewRecorder()
	handler.Ask(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestChatbotAsk_MessageTooLong(t *testing.T) {
	handler := handlers.NewChatbotHandler(&handlers.MockChatbotService{})
	req := handlers.NewTestRequest(t, "POST", "/api/chatbot", handlers.ChatbotRequest{
		Message: strings.Repeat("a", 501),
	})

	w := httptest.NewRecorder()
	handler.Ask(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestChatbotAsk_UpstreamFailure(t *testing.T) {
	mockBot := &handlers.MockChatbotService{
		AskFunc: func(ctx context.Context, question string) (string, error) {
			return "", models.NewInfrastructureError("chatbot", models.ErrInternalServer)
		},
	}

	handler := handlers.NewChatbotHandler(mockBot)
	req := handlers.NewTestRequest(t, "POST", "/api/chatbot", handlers.ChatbotRequest{
		Message: "hello",
	})

	w := httptest.NewRecorder()
	handler.Ask(w, req)

	handlers.AssertErrorResponse(t, w, 503, "service_unavailable")
}
