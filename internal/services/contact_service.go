package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/planovahq/planova-api/internal/models"
	pkglogger "github.com/planovahq/planova-api/pkg/logger"
)

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error)
}

// ContactService handles contact form submissions and notifies the team.
type ContactService struct {
	repo     ContactRepository
	notifier EmailNotifier
	logger   *slog.Logger
}

func NewContactService(repo ContactRepository, notifier EmailNotifier, logger *slog.Logger) *ContactService {
	return &ContactService{repo: repo, notifier: notifier, logger: logger}
}

func (s *ContactService) SubmitFeedback(ctx context.Context, name, email, message string) (*models.ContactSubmission, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	message = strings.TrimSpace(message)

	if name == "" {
		return nil, models.NewValidationError("name", "is required")
	}
	if email == "" {
		return nil, models.NewValidationError("email", "is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, models.NewValidationError("email", "must be a valid email address")
	}
	if message == "" {
		return nil, models.NewValidationError("message", "is required")
	}

	submission := &models.ContactSubmission{
		Name:    name,
		Email:   email,
		Message: message,
	}

	created, err := s.repo.Create(ctx, submission)
	if err != nil {
		s.logger.Error("failed to store contact submission", slog.Any("error", err))
		return nil, models.NewInfrastructureError("contact insert", err)
	}

	s.logger.Info("contact submission received",
		slog.String("submission_id", created.ID),
		slog.String("email", pkglogger.SanitizedEmail(created.Email)))

	// Notification failure is logged but never surfaced: the submission is
	// already stored and the team can find it there.
	subject := fmt.Sprintf("New contact message from %s", created.Name)
	body := fmt.Sprintf("From: %s <%s>\n\n%s", created.Name, created.Email, created.Message)
	if err := s.notifier.SendNotification(ctx, subject, body); err != nil {
		s.logger.Error("failed to send contact notification", slog.Any("error", err))
	}

	return created, nil
}
