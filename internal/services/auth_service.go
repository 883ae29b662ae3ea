package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/planovahq/planova-api/internal/auth"
	"github.com/planovahq/planova-api/internal/models"
	pkgauth "github.com/planovahq/planova-api/pkg/auth"
	pkglogger "github.com/planovahq/planova-api/pkg/logger"
)

// AccountRepository is the account store consumed by AuthService. Create
// must be atomic on the normalized email: of two concurrent inserts with the
// same address, exactly one may succeed and the other must return
// models.ErrConflict.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	UpdateTwoFactor(ctx context.Context, id, secret string, enabled bool) (*models.Account, error)
}

// AuthService owns registration, login, two-factor enrollment, and session
// issuance.
type AuthService struct {
	repo        AccountRepository
	tokens      *auth.TokenManager
	totp        *auth.TOTPManager
	timing      *auth.TimingDelay
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewAuthService(
	repo AccountRepository,
	tokens *auth.TokenManager,
	totp *auth.TOTPManager,
	timing *auth.TimingDelay,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		tokens:      tokens,
		totp:        totp,
		timing:      timing,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// AccountResponse is the account shape returned to HTTP clients. The
// password hash and TOTP secret never leave the service.
type AccountResponse struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	TwoFactorEnabled bool   `json:"twoFAEnabled"`
}

// AuthResponse pairs an account with a freshly issued session token.
type AuthResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"user"`
}

// EnrollmentResponse is returned when two-factor enrollment begins.
type EnrollmentResponse struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
	QRCode string `json:"qrCode"`
}

// emailPattern matches the minimal local@domain shape enforced at
// registration: no whitespace or extra @, and a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims an address. All lookups and stores go
// through this, so casing permutations land on the same row.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and issues a session token.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*AuthResponse, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = NormalizeEmail(email)

	if firstName == "" {
		return nil, models.NewValidationError("firstName", "is required")
	}
	if lastName == "" {
		return nil, models.NewValidationError("lastName", "is required")
	}
	if email == "" {
		return nil, models.NewValidationError("email", "is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, models.NewValidationError("email", "must be a valid email address")
	}
	if password == "" {
		return nil, models.NewValidationError("password", "is required")
	}
	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError("password", err.Error())
	}

	// Fast-path duplicate check. The unique index on accounts.email is the
	// real guarantee; a concurrent registration slipping past this lookup
	// still loses at insert time below.
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("registration failed: email already registered")
		return nil, models.ErrConflict
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing account", slog.Any("error", err))
		return nil, models.NewInfrastructureError("account lookup", err)
	}

	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.NewInfrastructureError("password hashing", err)
	}

	account := &models.Account{
		Email:            email,
		PasswordHash:     hashedPassword,
		FirstName:        firstName,
		LastName:         lastName,
		TwoFactorEnabled: false,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			s.logger.Info("registration lost duplicate-email race")
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create account", slog.Any("error", err))
		return nil, models.NewInfrastructureError("account insert", err)
	}

	token, err := s.tokens.Issue(created.ID, created.Email)
	if err != nil {
		s.logger.Error("failed to issue session token", slog.String("account_id", created.ID), slog.Any("error", err))
		return nil, models.NewInfrastructureError("token issuance", err)
	}

	s.logger.Info("account registered", slog.String("account_id", created.ID))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "register_success",
		AccountID: created.ID,
		Success:   true,
	})

	return &AuthResponse{Token: token, Account: accountToResponse(created)}, nil
}

// Login verifies credentials and, where two-factor is enabled, the TOTP
// code, then issues a session token. Unknown email and wrong password share
// one error so responses do not reveal which check failed; TimingDelay pads
// the failure paths for the same reason. Login never mutates the account.
func (s *AuthService) Login(ctx context.Context, email, password, totpCode string) (*AuthResponse, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		s.timing.Wait(false)
		return nil, models.ErrInvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login_failed",
				FailureReason: "invalid_credentials",
				Success:       false,
			})
			s.timing.Wait(false)
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("failed to get account by email", slog.Any("error", err))
		return nil, models.NewInfrastructureError("account lookup", err)
	}

	if err := pkgauth.ComparePassword(account.PasswordHash, password); err != nil {
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			AccountID:     account.ID,
			FailureReason: "invalid_credentials",
			Success:       false,
		})
		s.timing.Wait(false)
		return nil, models.ErrInvalidCredentials
	}

	if account.TwoFactorEnabled {
		if totpCode == "" {
			return nil, models.ErrTwoFactorRequired
		}
		if !s.totp.Validate(account.TwoFactorSecret, totpCode, auth.LoginSkew) {
			s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login_failed",
				AccountID:     account.ID,
				FailureReason: "invalid_totp",
				Success:       false,
			})
			s.timing.Wait(false)
			return nil, models.ErrInvalidTwoFactorCode
		}
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		s.logger.Error("failed to issue session token", slog.String("account_id", account.ID), slog.Any("error", err))
		return nil, models.NewInfrastructureError("token issuance", err)
	}

	s.logger.Info("login succeeded", slog.String("account_id", account.ID))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		AccountID: account.ID,
		Success:   true,
	})
	s.timing.Wait(true)

	return &AuthResponse{Token: token, Account: accountToResponse(account)}, nil
}

// BeginTwoFactorEnrollment generates a fresh secret, stores it on the
// account (replacing any unconfirmed one), and returns the secret with its
// provisioning URI and QR code. The enabled flag is untouched until
// ConfirmTwoFactorEnrollment verifies a code.
func (s *AuthService) BeginTwoFactorEnrollment(ctx context.Context, accountID string) (*EnrollmentResponse, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get account", slog.String("account_id", accountID), slog.Any("error", err))
		return nil, models.NewInfrastructureError("account lookup", err)
	}

	enrollment, err := s.totp.GenerateEnrollment(account.Email)
	if err != nil {
		s.logger.Error("failed to generate enrollment", slog.String("account_id", accountID), slog.Any("error", err))
		return nil, models.NewInfrastructureError("enrollment generation", err)
	}

	if _, err := s.repo.UpdateTwoFactor(ctx, account.ID, enrollment.Secret, account.TwoFactorEnabled); err != nil {
		s.logger.Error("failed to store enrollment secret", slog.String("account_id", accountID), slog.Any("error", err))
		return nil, models.NewInfrastructureError("account update", err)
	}

	s.logger.Info("two-factor enrollment started", slog.String("account_id", accountID))
	s.auditLogger.LogAccountEvent("2fa_enrollment_started", accountID)

	return &EnrollmentResponse{
		Secret: enrollment.Secret,
		URI:    enrollment.URI,
		QRCode: enrollment.QRCode,
	}, nil
}

// ConfirmTwoFactorEnrollment verifies a code against the pending secret and
// flips the enabled flag. The confirmation window is exact-step: the user
// must prove the authenticator works against a live clock right now.
func (s *AuthService) ConfirmTwoFactorEnrollment(ctx context.Context, accountID, totpCode string) error {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get account", slog.String("account_id", accountID), slog.Any("error", err))
		return models.NewInfrastructureError("account lookup", err)
	}

	if account.TwoFactorSecret == "" {
		return models.ErrTwoFactorNotEnrolled
	}

	if !s.totp.Validate(account.TwoFactorSecret, totpCode, auth.ConfirmSkew) {
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "2fa_confirm_failed",
			AccountID:     accountID,
			FailureReason: "invalid_totp",
			Success:       false,
		})
		return models.ErrInvalidTwoFactorCode
	}

	if _, err := s.repo.UpdateTwoFactor(ctx, account.ID, account.TwoFactorSecret, true); err != nil {
		s.logger.Error("failed to enable two-factor", slog.String("account_id", accountID), slog.Any("error", err))
		return models.NewInfrastructureError("account update", err)
	}

	s.logger.Info("two-factor enabled", slog.String("account_id", accountID))
	s.auditLogger.LogAccountEvent("2fa_enabled", accountID)

	return nil
}

func accountToResponse(account *models.Account) *AccountResponse {
	return &AccountResponse{
		ID:               account.ID,
		FirstName:        account.FirstName,
		LastName:         account.LastName,
		Email:            account.Email,
		TwoFactorEnabled: account.TwoFactorEnabled,
	}
}
