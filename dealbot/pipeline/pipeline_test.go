package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"dealbot/dealbot/types"
	"dealbot/dealbot/utils/logging"
)

type stubInterpreter struct {
	query types.ProductQuery
	got   string
}

func (s *stubInterpreter) Extract(ctx context.Context, userInput string) types.ProductQuery {
	s.got = userInput
	return s.query
}

type stubSource struct {
	name  string
	offer types.ProductOffer
	got   types.ProductQuery
}

func (s *stubSource) SiteName() string { return s.name }

func (s *stubSource) Lookup(ctx context.Context, query types.ProductQuery) types.ProductOffer {
	s.got = query
	return s.offer
}

type stubComposer struct {
	err      error
	amazon   types.ProductOffer
	flipkart types.ProductOffer
}

func (s *stubComposer) Compose(ctx context.Context, userInput string, amazon, flipkart types.ProductOffer) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.amazon, s.flipkart = amazon, flipkart
	return fmt.Sprintf("Hello! %s on Amazon: %s, on Flipkart: %s", userInput, amazon.ProductName, flipkart.ProductName), nil
}

func TestProcessEndToEnd(t *testing.T) {
	logging.InitLogger()
	interp := &stubInterpreter{query: types.ProductQuery{Product: "Wild Stone Edge EDP Premium Perfume for Men", Quantity: "100 Ml"}}
	amazon := &stubSource{name: "Amazon", offer: types.ProductOffer{ProductName: "Wild Stone Edge (Amazon)", Price: "₹499"}}
	flipkart := &stubSource{name: "Flipkart", offer: types.ProductOffer{ProductName: "Wild Stone Edge (Flipkart)", Price: "₹479"}}
	comp := &stubComposer{}

	input := "Wild Stone Edge EDP Premium Perfume for Men, 100 Ml"
	reply := New(interp, amazon, flipkart, comp).Process(context.Background(), input)

	if interp.got != input {
		t.Errorf("interpreter should see raw input, got %q", interp.got)
	}
	if !strings.Contains(amazon.got.Product, "Wild Stone Edge") || amazon.got.Quantity != "100 Ml" {
		t.Errorf("amazon adapter should receive the interpreted query, got %+v", amazon.got)
	}
	if flipkart.got != amazon.got {
		t.Errorf("both adapters should receive the same query")
	}
	if reply == "" {
		t.Fatal("expected non-empty reply")
	}
	for _, want := range []string{"Amazon", "Flipkart", "Wild Stone Edge"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q: %q", want, reply)
		}
	}
}

func TestProcessComposerFailureYieldsApology(t *testing.T) {
	logging.InitLogger()
	interp := &stubInterpreter{query: types.ProductQuery{Product: "perfume"}}
	amazon := &stubSource{name: "Amazon"}
	flipkart := &stubSource{name: "Flipkart"}
	comp := &stubComposer{err: errors.New("model overloaded")}

	reply := New(interp, amazon, flipkart, comp).Process(context.Background(), "perfume")
	if !strings.Contains(reply, "Sorry, I encountered an error") {
		t.Errorf("expected apology, got %q", reply)
	}
	if !strings.Contains(reply, "model overloaded") {
		t.Errorf("apology should embed the error text, got %q", reply)
	}
}

type panickyInterpreter struct{}

func (panickyInterpreter) Extract(ctx context.Context, userInput string) types.ProductQuery {
	panic("interpreter blew up")
}

func TestProcessPanicYieldsFallbackApology(t *testing.T) {
	logging.InitLogger()
	reply := New(panickyInterpreter{}, &stubSource{name: "Amazon"}, &stubSource{name: "Flipkart"}, &stubComposer{}).
		Process(context.Background(), "perfume")
	if reply != fallbackApology {
		t.Errorf("expected fallback apology, got %q", reply)
	}
}

func TestProcessPassesFallbackOffersThrough(t *testing.T) {
	logging.InitLogger()
	interp := &stubInterpreter{query: types.ProductQuery{Product: "perfume"}}
	amazon := &stubSource{name: "Amazon", offer: types.UnavailableOffer("https://www.amazon.in")}
	flipkart := &stubSource{name: "Flipkart", offer: types.ProductOffer{ProductName: "ok", Price: "1"}}
	comp := &stubComposer{}

	New(interp, amazon, flipkart, comp).Process(context.Background(), "perfume")
	if comp.amazon.Price != types.NotAvailable || comp.amazon.PurchaseURL != "https://www.amazon.in" {
		t.Errorf("composer should see the fallback offer, got %+v", comp.amazon)
	}
	if comp.flipkart.ProductName != "ok" {
		t.Errorf("healthy offer should pass through, got %+v", comp.flipkart)
	}
}
