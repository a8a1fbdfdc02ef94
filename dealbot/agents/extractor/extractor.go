package extractor

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"dealbot/dealbot/agents/configs"
	"dealbot/dealbot/services/llm"
	"dealbot/dealbot/types"
	"dealbot/dealbot/utils/jsonutils"
	"dealbot/dealbot/utils/logging"
)

// Extractor is the query-interpreter agent: free text in, structured
// ProductQuery out.
type Extractor struct {
	llm llm.Client
	cfg *configs.AgentConfig
}

func New(client llm.Client, cfg *configs.AgentConfig) *Extractor {
	return &Extractor{llm: client, cfg: cfg}
}

const taskTemplate = `from the user input for product search details: "%s"

Extract:
1. Product name
2. Quantity/volume (if specified)
3. Price constraints (if specified)
4. Any other relevant filters

example:
input=Wild Stone Edge EDP Premium Perfume for Men, 100 Ml

output=
    product:Wild Stone Edge EDP Premium Perfume for Men,
    quantity: 100 Ml

Return the results as a JSON object with these fields (include only if present in input):
    "product": "extracted product name",
    "quantity": "extracted quantity/volume",
    "price_max": "maximum price (number only)",
    "other_filters": "any other specifications"
`

// Extract runs the interpreter over raw user text. There is no hard error
// path: a failed call or unparsable output degrades to a query whose
// Product is the raw input, so downstream stages always get something.
func (e *Extractor) Extract(ctx context.Context, userInput string) types.ProductQuery {
	defer logging.LogDuration(ctx, "extractor_extract")()

	system := fmt.Sprintf("You are %s. Goal: %s\n%s",
		e.cfg.ExtractorRole, e.cfg.ExtractorGoal, e.cfg.ExtractorBackstory)

	req := llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: fmt.Sprintf(taskTemplate, userInput)},
		},
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.llm.Run(ctx, req)
	if err != nil {
		logging.ErrorLogger.Error("extractor llm call failed", zap.Error(err))
		return types.ProductQuery{Product: userInput}
	}

	// Decode loosely: models return price_max as either a number or a
	// string, and no schema is enforced on this contract.
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(jsonutils.ExtractJSON(resp)), &fields); err != nil {
		logging.ErrorLogger.Error("extractor output not parsable",
			zap.Error(err), zap.String("raw", resp))
		return types.ProductQuery{Product: userInput}
	}

	query := types.ProductQuery{
		Product:      stringField(fields, "product"),
		Quantity:     stringField(fields, "quantity"),
		PriceMax:     stringField(fields, "price_max"),
		OtherFilters: stringField(fields, "other_filters"),
	}
	if query.Product == "" {
		query.Product = userInput
	}
	return query
}

func stringField(fields map[string]interface{}, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := v.(float64); ok {
		if f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return fmt.Sprintf("%g", f)
	}
	return fmt.Sprint(v)
}
