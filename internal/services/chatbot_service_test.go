package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planovahq/planova-api/internal/models"
)

func TestChatbotService_Ask_DelegatesToBot(t *testing.T) {
	bot := &MockChatbot{
		AskFunc: func(ctx context.Context, question string) (string, error) {
			return "We offer full catering.", nil
		},
	}

	svc := NewChatbotService(bot, testLogger())

	answer, err := svc.Ask(context.Background(), "Do you do catering?")

	require.NoError(t, err)
	assert.Equal(t, "We offer full catering.", answer)
}

func TestChatbotService_Ask_EmptyQuestion(t *testing.T) {
	svc := NewChatbotService(&MockChatbot{}, testLogger())

	_, err := svc.Ask(context.Background(), "   ")

	assert.True(t, models.IsValidationError(err))
}

func TestChatbotService_Ask_QuestionTooLong(t *testing.T) {
	svc := NewChatbotService(&MockChatbot{}, testLogger())

	_, err := svc.Ask(context.Background(), strings.Repeat("a", maxQuestionLen+1))

	assert.True(t, models.IsValidationError(err))
}

func TestChatbotService_Ask_BotError(t *testing.T) {
	bot := &MockChatbot{
		AskFunc: func(ctx context.Context, question string) (string, error) {
			return "", models.ErrInternalServer
		},
	}

	svc := NewChatbotService(bot, testLogger())

	_, err := svc.Ask(context.Background(), "hello")

	assert.True(t, models.IsInfrastructureError(err))
}

func TestKeywordChatbot_MatchesKeywords(t *testing.T) {
	bot := NewKeywordChatbot()

	cases := []struct {
		question string
		contains string
	}{
		{"Hi there!", "Welcome to Planova"},
		{"How much does a wedding package cost?", "quote"},
		{"Do you cater vegan food?", "catering"},
		{"What decoration themes do you have?", "decoration team"},
		{"How do I book you?", "contact form"},
	}

	for _, tc := range cases {
		t.Run(tc.question, func(t *testing.T) {
			answer, err := bot.Ask(context.Background(), tc.question)
			require.NoError(t, err)
			assert.Contains(t, answer, tc.contains)
		})
	}
}

func TestKeywordChatbot_FallbackAnswer(t *testing.T) {
	bot := NewKeywordChatbot()

	answer, err := bot.Ask(context.Background(), "What is the meaning of life?")

	require.NoError(t, err)
	assert.Contains(t, answer, "not sure")
}
