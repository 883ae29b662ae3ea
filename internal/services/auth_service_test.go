package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planovahq/planova-api/internal/auth"
	"github.com/planovahq/planova-api/internal/models"
	pkgauth "github.com/planovahq/planova-api/pkg/auth"
	pkglogger "github.com/planovahq/planova-api/pkg/logger"
)

const testTokenSecret = "test-secret-for-session-tokens-32b"

// newTestAuthService wires an AuthService against a mock repo with a zero
// timing delay. The TOTP manager is returned so tests can pin its clock.
func newTestAuthService(repo *MockAccountRepository) (*AuthService, *auth.TOTPManager) {
	logger := slog.Default()
	totpManager := auth.NewTOTPManager("Planova")
	svc := NewAuthService(
		repo,
		auth.NewTokenManager(testTokenSecret, auth.DefaultSessionExpiry),
		totpManager,
		auth.NewTimingDelay(0, 0),
		logger,
		pkglogger.NewAuditLogger(logger),
	)
	return svc, totpManager
}

// codeAt derives the TOTP code for a secret at a given instant, matching the
// parameters authenticator apps use.
func codeAt(t *testing.T, secret string, at time.Time) string {
	t.Helper()
	code, err := totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    30,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	return code
}

// ============================================================================
// Register Tests
// ============================================================================

func TestAuthService_Register_Success(t *testing.T) {
	mockRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			account.ID = "acct123"
			account.CreatedAt = time.Now()
			account.UpdatedAt = time.Now()
			return account, nil
		},
	}

	svc, _ := newTestAuthService(mockRepo)

	resp, err := svc.Register(context.Background(), "Asha", "Rao", "asha@example.com", "sunflower42")

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "acct123", resp.Account.ID)
	assert.Equal(t, "asha@example.com", resp.Account.Email)
	assert.False(t, resp.Account.TwoFactorEnabled)
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	var lookedUp, stored string
	mockRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			lookedUp = email
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			stored = account.Email
			account.ID = "acct123"
			return account, nil
		},
	}

	svc, _ := newTestAuthService(mockRepo)

	_, err := svc.Register(context.Background(), "Asha", "Rao", "  Asha@Example.COM ", "sunflower42")

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", lookedUp)
	assert.Equal(t, "asha@example.com", stored)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	existing := NewTestAccount("acct1", "asha@example.com", "hash")
	mockRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			return existing, nil
		},
	}

	svc, _ := newTestAuthService(mockRepo)

	resp, err := svc.Register(context.Background(), "Asha", "Rao", "ASHA@example.com", "sunflower42")

	assert.Equal(t, models.ErrConflict, err)
	assert.Nil(t, resp)
}

func TestAuthService_Register_DuplicateRace(t *testing.T) {
	// The pre-insert lookup misses but the unique index still fires; the
	// caller sees the same conflict either way.
	mockRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			return nil, models.ErrConflict
		},
	}

	svc, _ := newTestAuthService(mockRepo)

	resp, err := svc.Register(context.Background(), "Asha", "Rao", "asha@example.com", "sunflower42")

	assert.Equal(t, models.ErrConflict, err)
	assert.Nil(t, resp)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(&MockAccountRepository{})

	cases := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		password  string
	}{
		{"missing first name", "", "Rao", "asha@example.com", "sunflower42"},
		{"missing last name", "Asha", "", "asha@example.com", "sunflower42"},
		{"missing email", "Asha", "Rao", "", "sunflower42"},
		{"malformed email", "Asha", "Rao", "not-an-email", "sunflower42"},
		{"email with spaces", "Asha", "Rao", "a b@example.com", "sunflower42"},
		{"missing password", "Asha", "Rao", "asha@example.com", ""},
		{"short password", "Asha", "Rao", "asha@example.com", "abc12"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.Register(context.Background(), tc.firstName, tc.lastName, tc.email, tc.password)
			assert.Nil(t, resp)
			assert.True(t, models.IsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

// ============================================================================
// Login Tests
// ============================================================================

func loginTestAccount(t *testing.T, password string) *models.Account {
	t.Helper()
	hash, err := pkgauth.HashPassword(password)
	require.NoError(t, err)
	return NewTestAccount("acct123", "asha@example.com", hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	account := loginTestAccount(t, "sunflower42")
	mockRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			return account, nil
		},
	}

	svc, _ := newTestAuthService(mockRepo)

	resp, err := svc.Login(context.Background(), "Asha@Example.com", "sunflower42", "")

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, account.ID, resp.Account.ID)
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordMatch(t *testing.T) {
	// The two failure modes must be indistinguishable to the caller.
	account := loginTestAccount(t, "sunflower42")

	unknownRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			return nil, models.ErrNotFound
		},
	}
	knownRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			return account, nil
		},
	}

	svcUnknown, _ := newTestAuthService(unknownRepo)
	svcKnown, _ := newTestAuthService(knownRepo)

	_, errUnknown := svcUnknown.Login(context.Background(), "nobody@example.com", "sunflower42", "")
	_, errWrongPass := svcKnown.Login(context.Background(), "asha@example.com", "wrong-password", "")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	assert.Equal(t, models.ErrInvalidCredentials, errUnknown)
	assert.Equal(t, models.ErrInvalidCredentials, errWrongPass)
}

func TestAuthService_Login_TwoFactorRequired(t *testing.T) {
	account := loginTestAccount(t, "sunflower42")
	account.TwoFactorEnabled = true
	account.TwoFactorSecret = "JBSWY3DPEHPK3PXP"

	mockRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			return account, nil
		},
	}

	svc, _ := newTestAuthService(mockRepo)

	resp, err := svc.Login(context.Background(), "asha@example.com", "sunflower42", "")

	assert.Equal(t, models.ErrTwoFactorRequired, err)
	assert.Nil(t, resp)
}

func TestAuthService_Login_TwoFactorSkewWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	account := loginTestAccount(t, "sunflower42")
	account.TwoFactorEnabled = true
	account.TwoFactorSecret = "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"

	mockRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			return account, nil
		},
	}

	svc, totpManager := newTestAuthService(mockRepo)
	totpManager.SetClock(func() time.Time { return now })

	cases := []struct {
		name   string
		codeAt time.Time
		ok     bool
	}{
		{"current step", now, true},
		{"previous step", now.Add(-30 * time.Second), true},
		{"next step", now.Add(30 * time.Second), true},
		{"two steps back", now.Add(-61 * time.Second), false},
		{"two steps ahead", now.Add(61 * time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code := codeAt(t, account.TwoFactorSecret, tc.codeAt)
			resp, err := svc.Login(context.Background(), "asha@example.com", "sunflower42", code)
			if tc.ok {
				require.NoError(t, err)
				assert.NotEmpty(t, resp.Token)
			} else {
				assert.Equal(t, models.ErrInvalidTwoFactorCode, err)
				assert.Nil(t, resp)
			}
		})
	}
}

func TestAuthService_Login_NeverMutatesAccount(t *testing.T) {
	account := loginTestAccount(t, "sunflower42")
	account.TwoFactorEnabled = true
	account.TwoFactorSecret = "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"

	updated := false
	mockRepo := &MockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.Account, error) {
			return account, nil
		},
		UpdateTwoFactorFunc: func(ctx context.Context, id, secret string, enabled bool) (*models.Account, error) {
			updated = true
			return account, nil
		},
	}

	svc, totpManager := newTestAuthService(mockRepo)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	totpManager.SetClock(func() time.Time { return now })

	// One success, one bad password, one bad code. None may write.
	_, err := svc.Login(context.Background(), "asha@example.com", "sunflower42", codeAt(t, account.TwoFactorSecret, now))
	require.NoError(t, err)
	_, _ = svc.Login(context.Background(), "asha@example.com", "wrong-password", "")
	_, _ = svc.Login(context.Background(), "asha@example.com", "sunflower42", "000000")

	assert.False(t, updated)
}

// ============================================================================
// Two-Factor Enrollment Tests
// ============================================================================

func TestAuthService_BeginTwoFactorEnrollment_Success(t *testing.T) {
	account := NewTestAccount("acct123", "asha@example.com", "hash")

	var storedSecret string
	var storedEnabled bool
	mockRepo := &MockAccountRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Account, error) {
			return account, nil
		},
		UpdateTwoFactorFunc: func(ctx context.Context, id, secret string, enabled bool) (*models.Account, error) {
			storedSecret = secret
			storedEnabled = enabled
			return account, nil
		},
	}

	svc, _ := newTestAuthService(mockRepo)

	resp, err := svc.BeginTwoFactorEnrollment(context.Background(), "acct123")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Secret)
	assert.Contains(t, resp.URI, "otpauth://totp/")
	assert.Contains(t, resp.QRCode, "data:image/png;base64,")
	assert.Equal(t, resp.Secret, storedSecret)
	assert.False(t, storedEnabled, "enrollment must not enable 2FA before confirmation")
}

func TestAuthService_BeginTwoFactorEnrollment_ReplacesPendingSecret(t *testing.T) {
	account := NewTestAccount("acct123", "asha@example.com", "hash")
	account.TwoFactorSecret = "OLDSECRETOLDSECRET"

	var storedSecret string
	mockRepo := &MockAccountRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Account, error) {
			return account, nil
		},
		UpdateTwoFactorFunc: func(ctx context.Context, id, secret string, enabled bool) (*models.Account, error) {
			storedSecret = secret
			return account, nil
		},
	}

	svc, _ := newTestAuthService(mockRepo)

	resp, err := svc.BeginTwoFactorEnrollment(context.Background(), "acct123")

	require.NoError(t, err)
	assert.NotEqual(t, "OLDSECRETOLDSECRET", storedSecret)
	assert.Equal(t, resp.Secret, storedSecret)
}

func TestAuthService_ConfirmTwoFactorEnrollment_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	account := NewTestAccount("acct123", "asha@example.com", "hash")
	account.TwoFactorSecret = "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"

	var storedSecret string
	var storedEnabled bool
	mockRepo := &MockAccountRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Account, error) {
			return account, nil
		},
		UpdateTwoFactorFunc: func(ctx context.Context, id, secret string, enabled bool) (*models.Account, error) {
			storedSecret = secret
			storedEnabled = enabled
			return account, nil
		},
	}

	svc, totpManager := newTestAuthService(mockRepo)
	totpManager.SetClock(func() time.Time { return now })

	err := svc.ConfirmTwoFactorEnrollment(context.Background(), "acct123", codeAt(t, account.TwoFactorSecret, now))

	require.NoError(t, err)
	assert.Equal(t, account.TwoFactorSecret, storedSecret)
	assert.True(t, storedEnabled)
}

func TestAuthService_ConfirmTwoFactorEnrollment_ExactStepOnly(t *testing.T) {
	// Confirmation accepts no clock skew; a code from the adjacent step
	// that would pass at login is rejected here.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	account := NewTestAccount("acct123", "asha@example.com", "hash")
	account.TwoFactorSecret = "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"

	mockRepo := &MockAccountRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Account, error) {
			return account, nil
		},
	}

	svc, totpManager := newTestAuthService(mockRepo)
	totpManager.SetClock(func() time.Time { return now })

	err := svc.ConfirmTwoFactorEnrollment(context.Background(), "acct123", codeAt(t, account.TwoFactorSecret, now.Add(-30*time.Second)))

	assert.Equal(t, models.ErrInvalidTwoFactorCode, err)
}

func TestAuthService_ConfirmTwoFactorEnrollment_NotEnrolled(t *testing.T) {
	account := NewTestAccount("acct123", "asha@example.com", "hash")

	mockRepo := &MockAccountRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Account, error) {
			return account, nil
		},
	}

	svc, _ := newTestAuthService(mockRepo)

	err := svc.ConfirmTwoFactorEnrollment(context.Background(), "acct123", "123456")

	assert.Equal(t, models.ErrTwoFactorNotEnrolled, err)
}
