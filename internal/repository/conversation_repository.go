package repository

import (
	"github.com/ndthang/edubot/internal/model"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(conversation *model.Conversation) error
	FindByIDWithMessages(id string, userID uint) (*model.Conversation, error)
	FindAllByUser(userID uint) ([]model.Conversation, error)
	AppendMessage(message *model.Message) error
	Update(conversation *model.Conversation) error
	Delete(id string, userID uint) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(conversation *model.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *conversationRepository) FindByIDWithMessages(id string, userID uint) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindAllByUser(userID uint) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&conversations).Error
	return conversations, err
}

func (r *conversationRepository) AppendMessage(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *conversationRepository) Update(conversation *model.Conversation) error {
	return r.db.Save(conversation).Error
}

func (r *conversationRepository) Delete(id string, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Conversation{}).Error
}
