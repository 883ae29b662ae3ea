package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planovahq/planova-api/internal/database"
	"github.com/planovahq/planova-api/internal/models"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(db *database.DB) *ContactRepository {
	return &ContactRepository{pool: db.Pool}
}

func (r *ContactRepository) Create(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
	submission.ID = uuid.New().String()
	submission.CreatedAt = time.Now()

	query := `
		INSERT INTO contact_submissions (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, message, created_at
	`

	var created models.ContactSubmission
	err := r.pool.QueryRow(ctx, query,
		submission.ID, submission.Name, submission.Email, submission.Message, submission.CreatedAt,
	).Scan(&created.ID, &created.Name, &created.Email, &created.Message, &created.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &created, nil
}
