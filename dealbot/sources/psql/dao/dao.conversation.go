package dao

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dealbot/dealbot/sources/psql/models"
)

// PlaceholderTitle is what a conversation is called until its first user
// message overwrites it.
const PlaceholderTitle = "New Conversation"

type ConversationDAO struct {
	DB *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{DB: db}
}

func (dao *ConversationDAO) CreateConversation(ctx context.Context, userID int) (*models.Conversation, error) {
	conv := models.Conversation{
		ConversationID: uuid.New().String(),
		Title:          PlaceholderTitle,
		UserID:         userID,
	}
	if err := dao.DB.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (dao *ConversationDAO) GetForUser(ctx context.Context, conversationID string, userID int) (*models.Conversation, error) {
	var conv models.Conversation
	err := dao.DB.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&conv).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListByUser returns the user's conversations, newest first.
func (dao *ConversationDAO) ListByUser(ctx context.Context, userID int) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

func (dao *ConversationDAO) UpdateTitle(ctx context.Context, id int, title string) error {
	return dao.DB.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("title", title).Error
}
