package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dealbot/dealbot/sources/psql/models"
)

type MessageDAO struct {
	DB *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{DB: db}
}

func (dao *MessageDAO) SaveMessage(ctx context.Context, conversationID int, content string, isUser bool) (*models.Message, error) {
	msg := models.Message{
		Content:        content,
		IsUser:         isUser,
		Timestamp:      time.Now().UTC(),
		ConversationID: conversationID,
	}
	if err := dao.DB.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByConversation returns messages in timestamp order.
func (dao *MessageDAO) ListByConversation(ctx context.Context, conversationID int) ([]models.Message, error) {
	var msgs []models.Message
	err := dao.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
