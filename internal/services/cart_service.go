package services

import (
	"context"
	"log/slog"

	"github.com/planovahq/planova-api/internal/models"
)

// CartRepository persists cart selections.
type CartRepository interface {
	Create(ctx context.Context, selection *models.CartSelection) (*models.CartSelection, error)
	List(ctx context.Context) ([]*models.CartSelection, error)
	Clear(ctx context.Context) error
}

// CartService manages event service selections added to the cart.
type CartService struct {
	repo   CartRepository
	logger *slog.Logger
}

func NewCartService(repo CartRepository, logger *slog.Logger) *CartService {
	return &CartService{repo: repo, logger: logger}
}

func (s *CartService) AddToCart(ctx context.Context, services, addons []string) (*models.CartSelection, error) {
	if len(services) == 0 && len(addons) == 0 {
		return nil, models.NewValidationError("", "Please select at least one service or addon")
	}

	selection := &models.CartSelection{
		Services: services,
		Addons:   addons,
	}

	created, err := s.repo.Create(ctx, selection)
	if err != nil {
		s.logger.Error("failed to store cart selection", slog.Any("error", err))
		return nil, models.NewInfrastructureError("cart insert", err)
	}

	return created, nil
}

func (s *CartService) GetCart(ctx context.Context) ([]*models.CartSelection, error) {
	selections, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list cart selections", slog.Any("error", err))
		return nil, models.NewInfrastructureError("cart list", err)
	}
	return selections, nil
}

func (s *CartService) ClearCart(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("failed to clear cart", slog.Any("error", err))
		return models.NewInfrastructureError("cart clear", err)
	}
	return nil
}
