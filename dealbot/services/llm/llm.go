package llm

import "context"

type ChatRequest struct {
	Model       string      `json:"model"`
	Messages    []Message   `json:"messages"`
	Temperature float64     `json:"temperature,omitempty"`
	Options     interface{} `json:"options,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a chat-completion backend. Both agents talk through it, and
// tests swap in a fake.
type Client interface {
	Run(ctx context.Context, req ChatRequest) (string, error)
}
