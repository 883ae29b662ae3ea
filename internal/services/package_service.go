package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/planovahq/planova-api/internal/models"
)

// CustomPackageRepository persists bespoke package requests.
type CustomPackageRepository interface {
	Create(ctx context.Context, pkg *models.CustomPackage) (*models.CustomPackage, error)
	List(ctx context.Context) ([]*models.CustomPackage, error)
}

// PackageService handles custom decoration package requests.
type PackageService struct {
	repo     CustomPackageRepository
	notifier EmailNotifier
	logger   *slog.Logger
}

func NewPackageService(repo CustomPackageRepository, notifier EmailNotifier, logger *slog.Logger) *PackageService {
	return &PackageService{repo: repo, notifier: notifier, logger: logger}
}

func (s *PackageService) SubmitPackage(ctx context.Context, pkg *models.CustomPackage) (*models.CustomPackage, error) {
	if pkg == nil || pkg.IsEmpty() {
		return nil, models.NewValidationError("", "package data is required")
	}

	created, err := s.repo.Create(ctx, pkg)
	if err != nil {
		s.logger.Error("failed to store custom package", slog.Any("error", err))
		return nil, models.NewInfrastructureError("custom package insert", err)
	}

	s.logger.Info("custom package request received", slog.String("package_id", created.ID))

	if err := s.notifier.SendNotification(ctx,
		"New custom package request",
		packageSummary(created),
	); err != nil {
		s.logger.Error("failed to send package notification", slog.Any("error", err))
	}

	return created, nil
}

func (s *PackageService) ListPackages(ctx context.Context) ([]*models.CustomPackage, error) {
	packages, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list custom packages", slog.Any("error", err))
		return nil, models.NewInfrastructureError("custom package list", err)
	}
	return packages, nil
}

func packageSummary(pkg *models.CustomPackage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request %s\n\n", pkg.ID)

	fields := []struct {
		label string
		value string
	}{
		{"Color palette", pkg.ColorPalette},
		{"Flowers", pkg.Flowers},
		{"Arch entrance", pkg.ArchEntrance},
		{"Lighting", pkg.Lighting},
		{"Table centerpieces", pkg.TableCenterpieces},
		{"Backdrop design", pkg.BackdropDesign},
		{"Fabric draping", pkg.FabricDraping},
		{"Photo booth", pkg.PhotoBooth},
		{"Special instructions", pkg.SpecialInstructions},
	}

	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
		}
	}

	return b.String()
}
