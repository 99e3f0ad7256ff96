package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/model"
	"github.com/ndthang/edubot/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ChatService interface {
	SendMessage(ctx context.Context, userID uint, req dto.SendMessageDTO) (*dto.SendMessageResponseDTO, error)
	NewConversation(userID uint) (*dto.ConversationSummaryDTO, error)
	GetHistory(userID uint) ([]dto.ConversationSummaryDTO, error)
	GetConversation(userID uint, chatID string) (*dto.ConversationDTO, error)
	DeleteConversation(userID uint, chatID string) error
}

type chatService struct {
	conversationRepo repository.ConversationRepository
	llm              LLMService
}

func NewChatService(conversationRepo repository.ConversationRepository, llm LLMService) ChatService {
	return &chatService{conversationRepo: conversationRepo, llm: llm}
}

func (s *chatService) SendMessage(ctx context.Context, userID uint, req dto.SendMessageDTO) (*dto.SendMessageResponseDTO, error) {
	var conversation *model.Conversation
	var err error

	if req.ChatID == "" {
		conversation = &model.Conversation{
			ID:     uuid.NewString(),
			UserID: userID,
			Title:  titleFromMessage(req.Message),
		}
		if err = s.conversationRepo.Create(conversation); err != nil {
			log.Error().Err(err).Uint("userID", userID).Msg("SendMessage: failed to create conversation")
			return nil, fmt.Errorf("failed to start conversation: %w", err)
		}
	} else {
		conversation, err = s.conversationRepo.FindByIDWithMessages(req.ChatID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrConversationNotFound
			}
			return nil, fmt.Errorf("failed to load conversation: %w", err)
		}
	}

	userMsg := model.Message{
		ConversationID: conversation.ID,
		Role:           model.MessageRoleUser,
		Content:        req.Message,
	}
	if err := s.conversationRepo.AppendMessage(&userMsg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	reply, err := s.llm.GenerateReply(ctx, conversation.Messages, req.Message)
	if err != nil {
		// The user's message is kept; they can resend to retry the reply.
		return nil, fmt.Errorf("assistant reply failed: %w", err)
	}

	assistantMsg := model.Message{
		ConversationID: conversation.ID,
		Role:           model.MessageRoleAssistant,
		Content:        reply,
	}
	if err := s.conversationRepo.AppendMessage(&assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to store assistant reply: %w", err)
	}

	return &dto.SendMessageResponseDTO{
		ChatID: conversation.ID,
		Reply: dto.MessageDTO{
			Role:      assistantMsg.Role,
			Content:   assistantMsg.Content,
			CreatedAt: assistantMsg.CreatedAt,
		},
	}, nil
}

func (s *chatService) NewConversation(userID uint) (*dto.ConversationSummaryDTO, error) {
	conversation := &model.Conversation{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  "New conversation",
	}
	if err := s.conversationRepo.Create(conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &dto.ConversationSummaryDTO{
		ID:        conversation.ID,
		Title:     conversation.Title,
		UpdatedAt: conversation.UpdatedAt,
	}, nil
}

func (s *chatService) GetHistory(userID uint) ([]dto.ConversationSummaryDTO, error) {
	conversations, err := s.conversationRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	dtos := make([]dto.ConversationSummaryDTO, 0, len(conversations))
	for _, c := range conversations {
		dtos = append(dtos, dto.ConversationSummaryDTO{ID: c.ID, Title: c.Title, UpdatedAt: c.UpdatedAt})
	}
	return dtos, nil
}

func (s *chatService) GetConversation(userID uint, chatID string) (*dto.ConversationDTO, error) {
	conversation, err := s.conversationRepo.FindByIDWithMessages(chatID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	resp := &dto.ConversationDTO{ID: conversation.ID, Title: conversation.Title}
	for _, m := range conversation.Messages {
		resp.Messages = append(resp.Messages, dto.MessageDTO{Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return resp, nil
}

func (s *chatService) DeleteConversation(userID uint, chatID string) error {
	if err := s.conversationRepo.Delete(chatID, userID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// titleFromMessage derives a short conversation title from the first message.
func titleFromMessage(message string) string {
	const maxLen = 40
	if utf8.RuneCountInString(message) <= maxLen {
		return message
	}
	runes := []rune(message)
	return string(runes[:maxLen]) + "..."
}
