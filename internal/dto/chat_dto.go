package dto

import "time"

type SendMessageDTO struct {
	Message string `json:"message" binding:"required"`
	ChatID  string `json:"chatId"` // empty starts a new conversation
}

type MessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageResponseDTO struct {
	ChatID string     `json:"chatId"`
	Reply  MessageDTO `json:"reply"`
}

type ConversationSummaryDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConversationDTO struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Messages []MessageDTO `json:"messages"`
}
