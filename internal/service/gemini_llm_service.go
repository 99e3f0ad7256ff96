package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/ndthang/edubot/config"
	"github.com/ndthang/edubot/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const counselorPrompt = "You are EduBot, an educational guidance counselor for high-school students. " +
	"You help students explore majors, careers and university choices, and explain personality and " +
	"career test results. Answer concisely and in the language the student writes in."

var ErrLLMUnavailable = errors.New("language model is not configured")

// LLMService produces the assistant side of a conversation.
type LLMService interface {
	GenerateReply(ctx context.Context, history []model.Message, userMessage string) (string, error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
}

func NewGeminiLLMService(cfg *config.Config) (LLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Chat assistant will be non-functional.")
		return &geminiLLMService{client: nil}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	m := client.GenerativeModel("gemini-1.5-flash")
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(counselorPrompt)}}
	return &geminiLLMService{client: m}, nil
}

func (s *geminiLLMService) GenerateReply(ctx context.Context, history []model.Message, userMessage string) (string, error) {
	if s.client == nil {
		return "", ErrLLMUnavailable
	}

	chat := s.client.StartChat()
	for _, msg := range history {
		role := "user"
		if msg.Role == model.MessageRoleAssistant {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		log.Error().Err(err).Msg("Gemini SendMessage failed")
		return "", fmt.Errorf("language model request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("language model returned no candidates")
	}

	var reply string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply += string(text)
		}
	}
	if reply == "" {
		return "", fmt.Errorf("language model returned an empty reply")
	}
	return reply, nil
}
