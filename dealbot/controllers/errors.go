package controllers

import "errors"

var (
	ErrEmailTaken           = errors.New("Email already registered")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrConversationNotFound = errors.New("Conversation not found")
)
