package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/planovahq/planova-api/internal/models"
)

const chatbotSystemPrompt = "You are a helpful assistant for Planova, an event planning " +
	"company. Answer questions about event services, decoration packages, catering and " +
	"pricing. Keep answers short and friendly. If a question is unrelated to event " +
	"planning, politely steer the conversation back."

// Chatbot answers customer questions about the event services on offer.
type Chatbot interface {
	Ask(ctx context.Context, question string) (string, error)
}

// OpenAIChatbot answers questions through the OpenAI chat completions API,
// falling back to keyword answers when the API call fails.
type OpenAIChatbot struct {
	client   openai.Client
	model    string
	fallback *KeywordChatbot
	logger   *slog.Logger
}

func NewOpenAIChatbot(apiKey, model string, logger *slog.Logger) *OpenAIChatbot {
	return &OpenAIChatbot{
		client:   openai.NewClient(option.WithAPIKey(apiKey)),
		model:    model,
		fallback: NewKeywordChatbot(),
		logger:   logger,
	}
}

func (c *OpenAIChatbot) Ask(ctx context.Context, question string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(chatbotSystemPrompt),
			openai.UserMessage(question),
		},
		MaxTokens: openai.Int(300),
	})
	if err != nil {
		c.logger.Warn("chat completion failed, using keyword fallback", slog.Any("error", err))
		return c.fallback.Ask(ctx, question)
	}
	if len(completion.Choices) == 0 {
		return c.fallback.Ask(ctx, question)
	}
	return completion.Choices[0].Message.Content, nil
}

// KeywordChatbot is a canned-answer bot used when no OpenAI key is configured.
type KeywordChatbot struct {
	answers []keywordAnswer
}

type keywordAnswer struct {
	keywords []string
	reply    string
}

func NewKeywordChatbot() *KeywordChatbot {
	return &KeywordChatbot{
		answers: []keywordAnswer{
			{
				keywords: []string{"hello", "hi", "hey"},
				reply:    "Hello! Welcome to Planova. Ask me anything about our event services, decoration packages or catering.",
			},
			{
				keywords: []string{"price", "cost", "pricing", "how much"},
				reply:    "Our packages start from affordable rates depending on the services you pick. Add services to your cart or submit a custom package request and we will send you a quote.",
			},
			{
				keywords: []string{"cater", "food", "menu"},
				reply:    "We offer full catering for weddings, birthdays and corporate events, with vegetarian and vegan menus available. Tell us your headcount and we will plan the rest.",
			},
			{
				keywords: []string{"decor", "decoration", "flower", "theme"},
				reply:    "Our decoration team handles color palettes, flowers, lighting, backdrops and more. Try the custom package builder to design your own setup.",
			},
			{
				keywords: []string{"book", "booking", "contact", "reach"},
				reply:    "You can reach us through the contact form and our team will get back to you within one business day.",
			},
		},
	}
}

func (c *KeywordChatbot) Ask(_ context.Context, question string) (string, error) {
	q := strings.ToLower(question)
	for _, a := range c.answers {
		for _, kw := range a.keywords {
			if strings.Contains(q, kw) {
				return a.reply, nil
			}
		}
	}
	return "I'm not sure about that one. Ask me about our services, pricing, catering or decorations, or use the contact form to reach our team.", nil
}

// ChatbotService validates questions and delegates to the configured bot.
type ChatbotService struct {
	bot    Chatbot
	logger *slog.Logger
}

func NewChatbotService(bot Chatbot, logger *slog.Logger) *ChatbotService {
	return &ChatbotService{bot: bot, logger: logger}
}

const maxQuestionLen = 500

func (s *ChatbotService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", models.NewValidationError("message", "message is required")
	}
	if len(question) > maxQuestionLen {
		return "", models.NewValidationError("message", "message is too long")
	}

	answer, err := s.bot.Ask(ctx, question)
	if err != nil {
		s.logger.Error("chatbot request failed", slog.Any("error", err))
		return "", models.NewInfrastructureError("chatbot", err)
	}
	return answer, nil
}
