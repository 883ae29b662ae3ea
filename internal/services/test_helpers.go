package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/planovahq/planova-api/internal/models"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

// MockAccountRepository implements AccountRepository for testing
type MockAccountRepository struct {
	GetByIDFunc         func(ctx context.Context, id string) (*models.Account, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*models.Account, error)
	CreateFunc          func(ctx context.Context, account *models.Account) (*models.Account, error)
	UpdateTwoFactorFunc func(ctx context.Context, id, secret string, enabled bool) (*models.Account, error)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAccountRepository) UpdateTwoFactor(ctx context.Context, id, secret string, enabled bool) (*models.Account, error) {
	if m.UpdateTwoFactorFunc != nil {
		return m.UpdateTwoFactorFunc(ctx, id, secret, enabled)
	}
	return nil, models.ErrInternalServer
}

// MockServiceRepository implements ServiceRepository for testing
type MockServiceRepository struct {
	ListFunc   func(ctx context.Context) ([]*models.Service, error)
	CreateFunc func(ctx context.Context, service *models.Service) (*models.Service, error)
}

func (m *MockServiceRepository) List(ctx context.Context) ([]*models.Service, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Service{}, nil
}

func (m *MockServiceRepository) Create(ctx context.Context, service *models.Service) (*models.Service, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, service)
	}
	return nil, models.ErrInternalServer
}

// MockCustomPackageRepository implements CustomPackageRepository for testing
type MockCustomPackageRepository struct {
	CreateFunc func(ctx context.Context, pkg *models.CustomPackage) (*models.CustomPackage, error)
	ListFunc   func(ctx context.Context) ([]*models.CustomPackage, error)
}

func (m *MockCustomPackageRepository) Create(ctx context.Context, pkg *models.CustomPackage) (*models.CustomPackage, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, pkg)
	}
	return nil, models.ErrInternalServer
}

func (m *MockCustomPackageRepository) List(ctx context.Context) ([]*models.CustomPackage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.CustomPackage{}, nil
}

// MockContactRepository implements ContactRepository for testing
type MockContactRepository struct {
	CreateFunc func(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error)
}

func (m *MockContactRepository) Create(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, submission)
	}
	return nil, models.ErrInternalServer
}

// MockCartRepository implements CartRepository for testing
type MockCartRepository struct {
	CreateFunc func(ctx context.Context, selection *models.CartSelection) (*models.CartSelection, error)
	ListFunc   func(ctx context.Context) ([]*models.CartSelection, error)
	ClearFunc  func(ctx context.Context) error
}

func (m *MockCartRepository) Create(ctx context.Context, selection *models.CartSelection) (*models.CartSelection, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, selection)
	}
	return nil, models.ErrInternalServer
}

func (m *MockCartRepository) List(ctx context.Context) ([]*models.CartSelection, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.CartSelection{}, nil
}

func (m *MockCartRepository) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

// MockEmailNotifier implements EmailNotifier for testing
type MockEmailNotifier struct {
	SendNotificationFunc func(ctx context.Context, subject, body string) error
	Sent                 []string
}

func (m *MockEmailNotifier) SendNotification(ctx context.Context, subject, body string) error {
	m.Sent = append(m.Sent, subject)
	if m.SendNotificationFunc != nil {
		return m.SendNotificationFunc(ctx, subject, body)
	}
	return nil
}

// MockChatbot implements Chatbot for testing
type MockChatbot struct {
	AskFunc func(ctx context.Context, question string) (string, error)
}

func (m *MockChatbot) Ask(ctx context.Context, question string) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	return "", models.ErrInternalServer
}

// NewTestAccount builds an account with sane defaults for tests.
func NewTestAccount(id, email, passwordHash string) *models.Account {
	now := time.Now()
	return &models.Account{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    "Test",
		LastName:     "Account",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
