package models

import "time"

// Conversation groups the messages of one chat thread. ConversationID is
// the public identifier used in URLs; ID stays internal.
type Conversation struct {
	ID             int       `json:"-" gorm:"primaryKey;autoIncrement"`
	ConversationID string    `json:"conversation_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	Title          string    `json:"title" gorm:"type:varchar(200);not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UserID         int       `json:"-" gorm:"not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}
