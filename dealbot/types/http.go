package types

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SendMessageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

type SendMessageResponse struct {
	UserMessage string `json:"user_message"`
	BotResponse string `json:"bot_response"`
}

// ConversationSummary is one row of the sidebar listing.
type ConversationSummary struct {
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	CreatedAt      string `json:"created_at"`
}

type MessageView struct {
	Content   string `json:"content"`
	IsUser    bool   `json:"is_user"`
	Timestamp string `json:"timestamp"`
}
