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

type CustomPackageRepository struct {
	pool *pgxpool.Pool
}

func NewCustomPackageRepository(db *database.DB) *CustomPackageRepository {
	return &CustomPackageRepository{pool: db.Pool}
}

func scanCustomPackageRow(scanner rowScanner) (*models.CustomPackage, error) {
	var pkg models.CustomPackage

	err := scanner.Scan(
		&pkg.ID, &pkg.ColorPalette, &pkg.Flowers, &pkg.ArchEntrance,
		&pkg.Lighting, &pkg.TableCenterpieces, &pkg.BackdropDesign,
		&pkg.FabricDraping, &pkg.PhotoBooth, &pkg.SpecialInstructions,
		&pkg.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &pkg, nil
}

const customPackageColumns = `id, color_palette, flowers, arch_entrance, lighting, table_centerpieces, backdrop_design, fabric_draping, photo_booth, special_instructions, created_at`

func (r *CustomPackageRepository) Create(ctx context.Context, pkg *models.CustomPackage) (*models.CustomPackage, error) {
	pkg.ID = uuid.New().String()
	pkg.CreatedAt = time.Now()

	query := `
		INSERT INTO custom_packages (` + customPackageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + customPackageColumns

	return scanCustomPackageRow(r.pool.QueryRow(ctx, query,
		pkg.ID, pkg.ColorPalette, pkg.Flowers, pkg.ArchEntrance,
		pkg.Lighting, pkg.TableCenterpieces, pkg.BackdropDesign,
		pkg.FabricDraping, pkg.PhotoBooth, pkg.SpecialInstructions,
		pkg.CreatedAt,
	))
}

// List returns packages newest first, matching the original admin view.
func (r *CustomPackageRepository) List(ctx context.Context) ([]*models.CustomPackage, error) {
	query := `SELECT ` + customPackageColumns + ` FROM custom_packages ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom packages: %w", err)
	}

	return scanCustomPackageRows(rows)
}

func scanCustomPackageRows(rows pgx.Rows) ([]*models.CustomPackage, error) {
	defer rows.Close()

	packages := make([]*models.CustomPackage, 0)

	for rows.Next() {
		pkg, err := scanCustomPackageRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan custom package: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return packages, nil
}
