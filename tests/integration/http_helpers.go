package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/planovahq/planova-api/internal/auth"
	"github.com/planovahq/planova-api/internal/config"
	"github.com/planovahq/planova-api/internal/database"
	"github.com/planovahq/planova-api/internal/handlers"
	middlewareCustom "github.com/planovahq/planova-api/internal/middleware"
	"github.com/planovahq/planova-api/internal/routes"
	"github.com/planovahq/planova-api/internal/services"
	pkglogger "github.com/planovahq/planova-api/pkg/logger"
)

// SentEmail represents a captured notification message
type SentEmail struct {
	Subject string
	Body    string
}

// MockEmailNotifier captures notifications for test assertions
type MockEmailNotifier struct {
	SentEmails []SentEmail
	mu         sync.Mutex
}

func (m *MockEmailNotifier) SendNotification(ctx context.Context, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SentEmails = append(m.SentEmails, SentEmail{Subject: subject, Body: body})
	return nil
}

// GetLastEmail returns the most recent notification sent
func (m *MockEmailNotifier) GetLastEmail() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.SentEmails) == 0 {
		return nil
	}
	return &m.SentEmails[len(m.SentEmails)-1]
}

// stubChatbot always answers with the same canned reply
type stubChatbot struct{}

func (stubChatbot) Ask(_ context.Context, _ string) (string, error) {
	return "stub answer", nil
}

// TestServer wraps httptest.Server with the database and all dependencies
type TestServer struct {
	Server        *httptest.Server
	Pool          *database.DB
	EmailNotifier *MockEmailNotifier
	Config        *config.Config

	// TOTPManager is exposed so tests can pin its clock
	TOTPManager *auth.TOTPManager
	logger      *slog.Logger
}

// NewTestServer initializes a complete HTTP server with real database and mocked email
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-32-characters-long-for-testing",
			SessionExpiry:   7 * 24 * time.Hour,
			TOTPIssuer:      "PlanovaTest",
			TimingDelay:     0,
			TimingJitter:    0,
			CartTTL:         7 * 24 * time.Hour,
			CleanupInterval: 1 * time.Hour,
		},
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
		},
	}

	accountRepo, serviceRepo, packageRepo, contactRepo, cartRepo := InitializeRepositories(db)

	mockEmail := &MockEmailNotifier{SentEmails: []SentEmail{}}

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionExpiry)
	totpManager := auth.NewTOTPManager(cfg.Auth.TOTPIssuer)
	timingDelay := auth.NewTimingDelay(cfg.Auth.TimingDelay, cfg.Auth.TimingJitter)
	auditLogger := pkglogger.NewAuditLogger(logger)

	authService := services.NewAuthService(accountRepo, tokenManager, totpManager, timingDelay, logger, auditLogger)
	catalogService := services.NewCatalogService(serviceRepo, logger)
	packageService := services.NewPackageService(packageRepo, mockEmail, logger)
	contactService := services.NewContactService(contactRepo, mockEmail, logger)
	cartService := services.NewCartService(cartRepo, logger)
	chatbotService := services.NewChatbotService(stubChatbot{}, logger)

	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Catalog: handlers.NewCatalogHandler(catalogService),
		Contact: handlers.NewContactHandler(contactService),
		Package: handlers.NewPackageHandler(packageService),
		Cart:    handlers.NewCartHandler(cartService),
		Events:  handlers.NewEventsHandler(),
		Chatbot: handlers.NewChatbotHandler(chatbotService),
		Health: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Generous limits so flows with many auth calls stay unthrottled
	limits := routes.RouteLimits{
		Auth:    middlewareCustom.RateLimitConfig{Requests: 1000, Window: time.Minute},
		Chatbot: middlewareCustom.RateLimitConfig{Requests: 1000, Window: time.Minute},
	}
	routes.RegisterRoutes(r, h, tokenManager, limits)

	server := httptest.NewServer(r)

	return &TestServer{
		Server:        server,
		Pool:          db,
		EmailNotifier: mockEmail,
		Config:        cfg,
		TOTPManager:   totpManager,
		logger:        logger,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestWithAuth makes an authenticated HTTP request with a session token
func (ts *TestServer) RequestWithAuth(method, path, sessionToken string, body interface{}) (*http.Response, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + sessionToken,
	}
	return ts.Request(method, path, body, headers)
}

// ParseJSONResponse parses the JSON response body into target
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// ExtractSessionFromResponse pulls the session token and two-factor signal
// out of an auth response
func ExtractSessionFromResponse(resp *http.Response) (token string, requires2FA bool, err error) {
	defer resp.Body.Close()

	var authResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", false, err
	}

	if t, ok := authResp["token"].(string); ok {
		token = t
	}
	if required, ok := authResp["requires_2fa"].(bool); ok {
		requires2FA = required
	}

	return token, requires2FA, nil
}

// GetErrorMessage extracts the error message from an error response
func GetErrorMessage(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return "", err
	}
	if msg, ok := errResp["message"].(string); ok {
		return msg, nil
	}
	return "", nil
}
