package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailNotifier sends plain-text notifications to the bookings inbox when a
// contact message or custom package request comes in.
type EmailNotifier interface {
	SendNotification(ctx context.Context, subject, body string) error
}

// AWSSESEmailNotifier sends notifications through AWS SES.
type AWSSESEmailNotifier struct {
	sesClient   *ses.Client
	fromAddress string
	toAddress   string
	logger      *slog.Logger
}

func NewAWSSESEmailNotifier(region, fromAddress, toAddress string, logger *slog.Logger) (*AWSSESEmailNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailNotifier{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		toAddress:   toAddress,
		logger:      logger,
	}, nil
}

func (s *AWSSESEmailNotifier) SendNotification(ctx context.Context, subject, body string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send notification via SES",
			slog.String("subject", subject),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("notification email sent",
		slog.String("subject", subject),
		slog.String("message_id", aws.ToString(result.MessageId)))

	return nil
}

// NoopEmailNotifier is used when EMAIL_ENABLED is off (local development).
type NoopEmailNotifier struct {
	logger *slog.Logger
}

func NewNoopEmailNotifier(logger *slog.Logger) *NoopEmailNotifier {
	return &NoopEmailNotifier{logger: logger}
}

func (s *NoopEmailNotifier) SendNotification(ctx context.Context, subject, body string) error {
	s.logger.Info("email notifications disabled, skipping", slog.String("subject", subject))
	return nil
}
