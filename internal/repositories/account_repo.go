package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/planovahq/planova-api/internal/database"
	"github.com/planovahq/planova-api/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository is the account store. Emails are stored lowercase and a
// unique index on the column makes Create atomic: a concurrent duplicate
// registration surfaces as models.ErrConflict, never a second row.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{pool: db.Pool}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccountRow(scanner rowScanner) (*models.Account, error) {
	var account models.Account

	err := scanner.Scan(
		&account.ID, &account.Email, &account.PasswordHash,
		&account.FirstName, &account.LastName,
		&account.TwoFactorSecret, &account.TwoFactorEnabled,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &account, nil
}

const accountColumns = `id, email, password_hash, first_name, last_name, two_factor_secret, two_factor_enabled, created_at, updated_at`

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return scanAccountRow(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail looks up an account by its normalized (lowercase) email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	return scanAccountRow(r.pool.QueryRow(ctx, query, email))
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	account.ID = uuid.New().String()

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	query := `
		INSERT INTO accounts (id, email, password_hash, first_name, last_name, two_factor_secret, two_factor_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + accountColumns

	created, err := scanAccountRow(r.pool.QueryRow(ctx, query,
		account.ID, account.Email, account.PasswordHash,
		account.FirstName, account.LastName,
		account.TwoFactorSecret, account.TwoFactorEnabled,
		account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateTwoFactor persists the 2FA sub-state. Email and password hash are
// immutable after creation, so this is the only account update in scope.
func (r *AccountRepository) UpdateTwoFactor(ctx context.Context, id, secret string, enabled bool) (*models.Account, error) {
	query := `
		UPDATE accounts SET two_factor_secret = $1, two_factor_enabled = $2, updated_at = $3
		WHERE id = $4
		RETURNING ` + accountColumns

	updated, err := scanAccountRow(r.pool.QueryRow(ctx, query, secret, enabled, time.Now(), id))
	if err != nil {
		return nil, err
	}

	return updated, nil
}
