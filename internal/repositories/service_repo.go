package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planovahq/planova-api/internal/database"
	"github.com/planovahq/planova-api/internal/models"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(db *database.DB) *ServiceRepository {
	return &ServiceRepository{pool: db.Pool}
}

func scanServiceRow(scanner rowScanner) (*models.Service, error) {
	var svc models.Service

	err := scanner.Scan(
		&svc.ID, &svc.Name, &svc.Description, &svc.Price,
		&svc.Featured, &svc.Category, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &svc, nil
}

func scanServiceRows(rows pgx.Rows) ([]*models.Service, error) {
	defer rows.Close()

	services := make([]*models.Service, 0)

	for rows.Next() {
		svc, err := scanServiceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return services, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*models.Service, error) {
	query := `
		SELECT id, name, description, price, featured, category, created_at, updated_at
		FROM services ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}

	return scanServiceRows(rows)
}

func (r *ServiceRepository) Create(ctx context.Context, svc *models.Service) (*models.Service, error) {
	svc.ID = uuid.New().String()

	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	if svc.Category == "" {
		svc.Category = "general"
	}

	query := `
		INSERT INTO services (id, name, description, price, featured, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, description, price, featured, category, created_at, updated_at
	`

	return scanServiceRow(r.pool.QueryRow(ctx, query,
		svc.ID, svc.Name, svc.Description, svc.Price,
		svc.Featured, svc.Category, svc.CreatedAt, svc.UpdatedAt,
	))
}
