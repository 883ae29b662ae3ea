package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/planovahq/planova-api/internal/database"
	"github.com/planovahq/planova-api/internal/models"
)

// CartRepository persists cart selections. The original app kept these in a
// process-global slice; a table gives the same contract across restarts and
// replicas, with DeleteOlderThan standing in for session expiry.
type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(db *database.DB) *CartRepository {
	return &CartRepository{pool: db.Pool}
}

func scanCartRow(scanner rowScanner) (*models.CartSelection, error) {
	var cart models.CartSelection

	err := scanner.Scan(
		&cart.ID,
		pq.Array(&cart.Services),
		pq.Array(&cart.Addons),
		&cart.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &cart, nil
}

func (r *CartRepository) Create(ctx context.Context, cart *models.CartSelection) (*models.CartSelection, error) {
	cart.ID = uuid.New().String()
	cart.CreatedAt = time.Now()

	query := `
		INSERT INTO cart_selections (id, services, addons, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, services, addons, created_at
	`

	return scanCartRow(r.pool.QueryRow(ctx, query,
		cart.ID, pq.Array(cart.Services), pq.Array(cart.Addons), cart.CreatedAt,
	))
}

func (r *CartRepository) List(ctx context.Context) ([]*models.CartSelection, error) {
	query := `SELECT id, services, addons, created_at FROM cart_selections ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart selections: %w", err)
	}

	return scanCartRows(rows)
}

func scanCartRows(rows pgx.Rows) ([]*models.CartSelection, error) {
	defer rows.Close()

	carts := make([]*models.CartSelection, 0)

	for rows.Next() {
		cart, err := scanCartRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart selection: %w", err)
		}
		carts = append(carts, cart)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return carts, nil
}

// Clear removes every cart selection.
func (r *CartRepository) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_selections`)
	if err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

// DeleteOlderThan purges selections created before cutoff. The background
// cleanup task calls this on an interval.
func (r *CartRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM cart_selections WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return result.RowsAffected(), nil
}
