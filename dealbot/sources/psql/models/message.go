package models

import "time"

// Message is immutable once created. Ordering within a conversation is
// by timestamp, which matches insertion order.
type Message struct {
	ID             int          `json:"-" gorm:"primaryKey;autoIncrement"`
	Content        string       `json:"content" gorm:"type:text;not null"`
	// No default tag: gorm drops zero-value fields that carry one from the
	// INSERT, which would turn every bot message into a user message.
	IsUser         bool         `json:"is_user" gorm:"not null"`
	Timestamp      time.Time    `json:"timestamp" gorm:"not null;default:CURRENT_TIMESTAMP;index"`
	ConversationID int          `json:"-" gorm:"not null;index"`
	Conversation   Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE"`
}
