package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planovahq/planova-api/internal/auth"
	"github.com/planovahq/planova-api/internal/models"
	"github.com/planovahq/planova-api/internal/services"
	pkghttp "github.com/planovahq/planova-api/pkg/http"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithSessionContext adds session claims to the request context for testing
// authenticated endpoints
func WithSessionContext(req *http.Request, accountID, email string) *http.Request {
	claims := &models.SessionClaims{
		AccountID: accountID,
		Email:     email,
	}
	ctx := context.WithValue(req.Context(), auth.SessionContextKey, claims)
	return req.WithContext(ctx)
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"), "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	RegisterFunc                   func(ctx context.Context, firstName, lastName, email, password string) (*services.AuthResponse, error)
	LoginFunc                      func(ctx context.Context, email, password, totpCode string) (*services.AuthResponse, error)
	BeginTwoFactorEnrollmentFunc   func(ctx context.Context, accountID string) (*services.EnrollmentResponse, error)
	ConfirmTwoFactorEnrollmentFunc func(ctx context.Context, accountID, totpCode string) error
}

func (m *MockAuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*services.AuthResponse, error) {
	if m.RegisterFunc == nil {
		return nil, models.ErrConflict
	}
	return m.RegisterFunc(ctx, firstName, lastName, email, password)
}

func (m *MockAuthService) Login(ctx context.Context, email, password, totpCode string) (*services.AuthResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrInvalidCredentials
	}
	return m.LoginFunc(ctx, email, password, totpCode)
}

func (m *MockAuthService) BeginTwoFactorEnrollment(ctx context.Context, accountID string) (*services.EnrollmentResponse, error) {
	if m.BeginTwoFactorEnrollmentFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.BeginTwoFactorEnrollmentFunc(ctx, accountID)
}

func (m *MockAuthService) ConfirmTwoFactorEnrollment(ctx context.Context, accountID, totpCode string) error {
	if m.ConfirmTwoFactorEnrollmentFunc == nil {
		return models.ErrTwoFactorNotEnrolled
	}
	return m.ConfirmTwoFactorEnrollmentFunc(ctx, accountID, totpCode)
}

// MockCatalogService implements CatalogServiceInterface for testing
type MockCatalogService struct {
	ListServicesFunc func(ctx context.Context) ([]*models.Service, error)
	AddServiceFunc   func(ctx context.Context, name, description string, price float64, featured bool, category string) (*models.Service, error)
}

func (m *MockCatalogService) ListServices(ctx context.Context) ([]*models.Service, error) {
	if m.ListServicesFunc == nil {
		return []*models.Service{}, nil
	}
	return m.ListServicesFunc(ctx)
}

func (m *MockCatalogService) AddService(ctx context.Context, name, description string, price float64, featured bool, category string) (*models.Service, error) {
	if m.AddServiceFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.AddServiceFunc(ctx, name, description, price, featured, category)
}

// MockContactService implements ContactServiceInterface for testing
type MockContactService struct {
	SubmitFeedbackFunc func(ctx context.Context, name, email, message string) (*models.ContactSubmission, error)
}

func (m *MockContactService) SubmitFeedback(ctx context.Context, name, email, message string) (*models.ContactSubmission, error) {
	if m.SubmitFeedbackFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.SubmitFeedbackFunc(ctx, name, email, message)
}

// MockPackageService implements PackageServiceInterface for testing
type MockPackageService struct {
	SubmitPackageFunc func(ctx context.Context, pkg *models.CustomPackage) (*models.CustomPackage, error)
	ListPackagesFunc  func(ctx context.Context) ([]*models.CustomPackage, error)
}

func (m *MockPackageService) SubmitPackage(ctx context.Context, pkg *models.CustomPackage) (*models.CustomPackage, error) {
	if m.SubmitPackageFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.SubmitPackageFunc(ctx, pkg)
}

func (m *MockPackageService) ListPackages(ctx context.Context) ([]*models.CustomPackage, error) {
	if m.ListPackagesFunc == nil {
		return []*models.CustomPackage{}, nil
	}
	return m.ListPackagesFunc(ctx)
}

// MockCartService implements CartServiceInterface for testing
type MockCartService struct {
	AddToCartFunc func(ctx context.Context, services, addons []string) (*models.CartSelection, error)
	GetCartFunc   func(ctx context.Context) ([]*models.CartSelection, error)
	ClearCartFunc func(ctx context.Context) error
}

func (m *MockCartService) AddToCart(ctx context.Context, services, addons []string) (*models.CartSelection, error) {
	if m.AddToCartFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.AddToCartFunc(ctx, services, addons)
}

func (m *MockCartService) GetCart(ctx context.Context) ([]*models.CartSelection, error) {
	if m.GetCartFunc == nil {
		return []*models.CartSelection{}, nil
	}
	return m.GetCartFunc(ctx)
}

func (m *MockCartService) ClearCart(ctx context.Context) error {
	if m.ClearCartFunc == nil {
		return nil
	}
	return m.ClearCartFunc(ctx)
}

// MockChatbotService implements ChatbotServiceInterface for testing
type MockChatbotService struct {
	AskFunc func(ctx context.Context, question string) (string, error)
}

func (m *MockChatbotService) Ask(ctx context.Context, question string) (string, error) {
	if m.AskFunc == nil {
		return "", models.ErrInternalServer
	}
	return m.AskFunc(ctx, question)
}
