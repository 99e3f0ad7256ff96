package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

type Conversation struct {
	ID        string         `gorm:"primarykey;type:uuid" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Title     string         `json:"title"`
	Messages  []Message      `json:"messages,omitempty" gorm:"foreignKey:ConversationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Message struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	ConversationID string    `json:"conversation_id" gorm:"type:uuid;not null;index"`
	Role           string    `json:"role" gorm:"not null"` // user, assistant
	Content        string    `json:"content" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"created_at"`
}
