package llm

import (
	"context"
	"fmt"

	httputils "dealbot/dealbot/utils/http"
	"dealbot/dealbot/utils/logging"
)

type GroqClient struct {
	baseURL string
	apiKey  string
	model   string
}

// NewGroqClient returns a client pointing to the Groq Chat endpoint.
// Groq's OpenAI-compatible base path is https://api.groq.com/openai/v1.
func NewGroqClient(apiKey, model string) *GroqClient {
	return &GroqClient{
		baseURL: "https://api.groq.com/openai/v1",
		apiKey:  apiKey,
		model:   model,
	}
}

// Run performs a non-streaming chat completion. The configured model is
// used when the request leaves Model empty.
func (c *GroqClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "groq_service_run")()

	if req.Model == "" {
		req.Model = c.model
	}

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)

	var resp struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		Created int64  `json:"created"`
		Model   string `json:"model"`
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}

	if err := httputils.PostJSONWithAuth(url, c.apiKey, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("no choices returned")
}
