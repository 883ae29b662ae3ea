package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/planovahq/planova-api/internal/models"
)

// ServiceRepository is the catalog store consumed by CatalogService.
type ServiceRepository interface {
	List(ctx context.Context) ([]*models.Service, error)
	Create(ctx context.Context, svc *models.Service) (*models.Service, error)
}

// CatalogService manages the bookable services catalog.
type CatalogService struct {
	repo   ServiceRepository
	logger *slog.Logger
}

func NewCatalogService(repo ServiceRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*models.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list services", slog.Any("error", err))
		return nil, models.NewInfrastructureError("service list", err)
	}
	return services, nil
}

func (s *CatalogService) AddService(ctx context.Context, name, description string, price float64, featured bool, category string) (*models.Service, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" {
		return nil, models.NewValidationError("name", "is required")
	}
	if description == "" {
		return nil, models.NewValidationError("description", "is required")
	}
	if price < 0 {
		return nil, models.NewValidationError("price", "must not be negative")
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = "general"
	}

	svc := &models.Service{
		Name:        name,
		Description: description,
		Price:       price,
		Featured:    featured,
		Category:    category,
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("failed to create service", slog.Any("error", err))
		return nil, models.NewInfrastructureError("service insert", err)
	}

	s.logger.Info("service created", slog.String("service_id", created.ID), slog.String("name", created.Name))
	return created, nil
}
