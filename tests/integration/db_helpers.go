package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/planovahq/planova-api/internal/database"
	"github.com/planovahq/planova-api/internal/models"
	"github.com/planovahq/planova-api/internal/repositories"
	"github.com/planovahq/planova-api/pkg/auth"
)

// TestDB manages the PostgreSQL testcontainer and database operations
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase creates a PostgreSQL testcontainer, runs migrations, returns TestDB
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("planova"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.RunMigrations(pool); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         &database.DB{Pool: pool},
	}, nil
}

// Teardown stops the container and closes the connection pool
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupTables truncates all tables for test isolation
func (db *TestDB) CleanupTables(ctx context.Context) error {
	tables := []string{
		"cart_selections",
		"contact_submissions",
		"custom_packages",
		"services",
		"accounts",
	}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// InitializeRepositories creates all repository instances from the database wrapper
func InitializeRepositories(db *database.DB) (
	*repositories.AccountRepository,
	*repositories.ServiceRepository,
	*repositories.CustomPackageRepository,
	*repositories.ContactRepository,
	*repositories.CartRepository,
) {
	return repositories.NewAccountRepository(db),
		repositories.NewServiceRepository(db),
		repositories.NewCustomPackageRepository(db),
		repositories.NewContactRepository(db),
		repositories.NewCartRepository(db)
}

// SeedAccount inserts a test account with hashed password
func SeedAccount(ctx context.Context, pool *pgxpool.Pool, email, password string) (*models.Account, error) {
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO accounts (id, email, password_hash, first_name, last_name, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, 'Test', 'Account', NOW(), NOW())
		RETURNING id, email, password_hash, first_name, last_name, two_factor_secret, two_factor_enabled, created_at, updated_at
	`

	var account models.Account
	err = pool.QueryRow(ctx, query, email, hashedPassword).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.FirstName,
		&account.LastName,
		&account.TwoFactorSecret,
		&account.TwoFactorEnabled,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	return &account, nil
}

// SeedEnrolledAccount inserts an account with two-factor already confirmed
func SeedEnrolledAccount(ctx context.Context, pool *pgxpool.Pool, email, password, totpSecret string) (*models.Account, error) {
	account, err := SeedAccount(ctx, pool, email, password)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE accounts SET two_factor_secret = $2, two_factor_enabled = true, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := pool.Exec(ctx, query, account.ID, totpSecret); err != nil {
		return nil, fmt.Errorf("failed to enable two-factor: %w", err)
	}

	account.TwoFactorSecret = totpSecret
	account.TwoFactorEnabled = true
	return account, nil
}
