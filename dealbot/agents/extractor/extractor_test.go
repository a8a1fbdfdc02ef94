package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dealbot/dealbot/agents/configs"
	"dealbot/dealbot/services/llm"
	"dealbot/dealbot/utils/logging"
)

type fakeLLM struct {
	resp    string
	err     error
	lastReq llm.ChatRequest
}

func (f *fakeLLM) Run(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.lastReq = req
	return f.resp, f.err
}

func newTestExtractor(fake *fakeLLM) *Extractor {
	logging.InitLogger()
	return New(fake, configs.LoadConfig())
}

func TestExtractParsesFields(t *testing.T) {
	fake := &fakeLLM{resp: "```json\n{\"product\": \"Wild Stone Edge EDP Premium Perfume for Men\", \"quantity\": \"100 Ml\"}\n```"}
	e := newTestExtractor(fake)

	query := e.Extract(context.Background(), "Wild Stone Edge EDP Premium Perfume for Men, 100 Ml")
	if !strings.Contains(query.Product, "Wild Stone Edge") {
		t.Errorf("expected product to contain 'Wild Stone Edge', got %q", query.Product)
	}
	if query.Quantity != "100 Ml" {
		t.Errorf("expected quantity '100 Ml', got %q", query.Quantity)
	}
	if query.PriceMax != "" {
		t.Errorf("absent field should stay empty, got %q", query.PriceMax)
	}
}

func TestExtractCoercesNumericPriceMax(t *testing.T) {
	fake := &fakeLLM{resp: `{"product": "perfume", "price_max": 500}`}
	e := newTestExtractor(fake)

	query := e.Extract(context.Background(), "perfume under 500")
	if query.PriceMax != "500" {
		t.Errorf("expected price_max '500', got %q", query.PriceMax)
	}
}

func TestExtractDegradesOnLLMError(t *testing.T) {
	fake := &fakeLLM{err: errors.New("backend down")}
	e := newTestExtractor(fake)

	query := e.Extract(context.Background(), "some perfume")
	if query.Product != "some perfume" {
		t.Errorf("expected raw input as product, got %q", query.Product)
	}
}

func TestExtractDegradesOnUnparsableOutput(t *testing.T) {
	fake := &fakeLLM{resp: "I could not find any product details, sorry!"}
	e := newTestExtractor(fake)

	query := e.Extract(context.Background(), "some perfume")
	if query.Product != "some perfume" {
		t.Errorf("expected raw input as product, got %q", query.Product)
	}
}

func TestExtractSendsTaskPrompt(t *testing.T) {
	fake := &fakeLLM{resp: `{"product": "x"}`}
	e := newTestExtractor(fake)

	e.Extract(context.Background(), "blue shoes size 9")
	if len(fake.lastReq.Messages) != 2 {
		t.Fatalf("expected system + user message, got %d", len(fake.lastReq.Messages))
	}
	if !strings.Contains(fake.lastReq.Messages[1].Content, "blue shoes size 9") {
		t.Errorf("task prompt should embed the raw input")
	}
	if !strings.Contains(fake.lastReq.Messages[0].Content, "Product Parser") {
		t.Errorf("system prompt should carry the agent role")
	}
}
