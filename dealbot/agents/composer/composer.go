package composer

import (
	"context"
	"fmt"

	"dealbot/dealbot/agents/configs"
	"dealbot/dealbot/services/llm"
	"dealbot/dealbot/types"
	"dealbot/dealbot/utils/jsonutils"
	"dealbot/dealbot/utils/logging"
)

// Composer is the response-generator agent: it merges the interpreted
// query and both marketplace offers into one reply string.
type Composer struct {
	llm llm.Client
	cfg *configs.AgentConfig
}

func New(client llm.Client, cfg *configs.AgentConfig) *Composer {
	return &Composer{llm: client, cfg: cfg}
}

const taskTemplate = `Generate a short and user-friendly response for the product: %s.

best deal for this product on amazon:
Amazon product details: %s

best deal for this product on flipkart:
Flipkart product details: %s

The response should:
- Start with a warm greeting.
- Mention the product name clearly.
- Present the best deal info from both Amazon and Flipkart in the following format:

Product: <Product Name>

Amazon Deal:
1. Full product name (as shown on Amazon)
2. Current minimum price
3. Average rating
4. Direct purchase URL

Flipkart Deal:
1. Full product name (as shown on Flipkart)
2. Current minimum price
3. Average rating
4. Direct purchase URL

Additional instructions:
- Use appropriate emojis in the final output to enhance user experience.
- Keep the response concise and well-formatted.
- Focus mainly on price and direct purchase links.
`

// Compose returns the agent's reply verbatim; no structural validation is
// performed on the output.
func (c *Composer) Compose(ctx context.Context, userInput string, amazon, flipkart types.ProductOffer) (string, error) {
	defer logging.LogDuration(ctx, "composer_compose")()

	system := fmt.Sprintf("You are %s. Goal: %s\n%s",
		c.cfg.ComposerRole, c.cfg.ComposerGoal, c.cfg.ComposerBackstory)

	req := llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: fmt.Sprintf(taskTemplate,
				userInput, jsonutils.ToJSON(amazon), jsonutils.ToJSON(flipkart))},
		},
		Temperature: c.cfg.Temperature,
	}

	return c.llm.Run(ctx, req)
}
