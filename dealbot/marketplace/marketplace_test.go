package marketplace

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dealbot/dealbot/services/llm"
	"dealbot/dealbot/types"
	"dealbot/dealbot/utils/logging"
)

type fakeFetcher struct {
	html    string
	err     error
	lastURL string
	calls   int
}

func (f *fakeFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	f.calls++
	f.lastURL = url
	return f.html, f.err
}

type fakeLLM struct {
	resp    string
	err     error
	lastReq llm.ChatRequest
}

func (f *fakeLLM) Run(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.lastReq = req
	return f.resp, f.err
}

type memCache struct {
	offers map[string]types.ProductOffer
}

func (c *memCache) GetOffer(ctx context.Context, key string) (types.ProductOffer, bool) {
	offer, ok := c.offers[key]
	return offer, ok
}

func (c *memCache) PutOffer(ctx context.Context, key string, offer types.ProductOffer) {
	c.offers[key] = offer
}

const resultPage = `<html><body>
<div data-component-type="s-search-result">Wild Stone Edge EDP ₹499 4.2 out of 5</div>
</body></html>`

func amazonAdapter(fetcher *fakeFetcher, client *fakeLLM, cache OfferCache) *Adapter {
	logging.InitLogger()
	return NewAdapter(AmazonSite("https://www.amazon.in"), fetcher, client, cache)
}

func TestLookupParsesOffer(t *testing.T) {
	fetcher := &fakeFetcher{html: resultPage}
	client := &fakeLLM{resp: `{"product_name": "Wild Stone Edge EDP Premium Perfume for Men, 100 Ml", "price": "₹499", "rating": "4.2", "purchase_url": "https://www.amazon.in/dp/B07XYZ"}`}
	a := amazonAdapter(fetcher, client, nil)

	offer := a.Lookup(context.Background(), types.ProductQuery{Product: "Wild Stone Edge EDP", Quantity: "100 Ml"})
	if offer.ProductName != "Wild Stone Edge EDP Premium Perfume for Men, 100 Ml" {
		t.Errorf("unexpected product name %q", offer.ProductName)
	}
	if offer.Price != "₹499" || offer.Rating != "4.2" {
		t.Errorf("unexpected price/rating: %+v", offer)
	}
	if !strings.Contains(fetcher.lastURL, "/s?k=") {
		t.Errorf("expected amazon search URL, got %q", fetcher.lastURL)
	}
	if !strings.Contains(fetcher.lastURL, "Wild+Stone+Edge+EDP+100+Ml") {
		t.Errorf("search URL should carry query and quantity, got %q", fetcher.lastURL)
	}
}

func TestLookupTaskEnumeratesRequiredFields(t *testing.T) {
	fetcher := &fakeFetcher{html: resultPage}
	client := &fakeLLM{resp: `{"product_name": "x", "price": "1", "rating": "1", "purchase_url": "https://a"}`}
	a := amazonAdapter(fetcher, client, nil)

	a.Lookup(context.Background(), types.ProductQuery{Product: "perfume"})
	task := client.lastReq.Messages[0].Content
	for _, want := range []string{"Full product name", "minimum price", "Average rating", "purchase URL", `"product_name"`, `"purchase_url"`} {
		if !strings.Contains(task, want) {
			t.Errorf("task instruction missing %q", want)
		}
	}
}

func TestLookupFallbackOnFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("browser crashed")}
	client := &fakeLLM{}
	a := amazonAdapter(fetcher, client, nil)

	offer := a.Lookup(context.Background(), types.ProductQuery{Product: "perfume"})
	if offer.Price != types.NotAvailable || offer.Rating != types.NotAvailable {
		t.Errorf("expected N/A price and rating, got %+v", offer)
	}
	if offer.PurchaseURL != "https://www.amazon.in" {
		t.Errorf("expected home page URL, got %q", offer.PurchaseURL)
	}
	if offer.ProductName != "Error retrieving product" {
		t.Errorf("expected error indicator name, got %q", offer.ProductName)
	}
}

func TestLookupFallbackOnUnparsableLLMOutput(t *testing.T) {
	fetcher := &fakeFetcher{html: resultPage}
	client := &fakeLLM{resp: "no json here"}
	a := amazonAdapter(fetcher, client, nil)

	offer := a.Lookup(context.Background(), types.ProductQuery{Product: "perfume"})
	if !offer.Unavailable() {
		t.Errorf("expected fallback offer, got %+v", offer)
	}
}

func TestLookupResolvesRelativePurchaseURL(t *testing.T) {
	fetcher := &fakeFetcher{html: resultPage}
	client := &fakeLLM{resp: `{"product_name": "x", "price": "1", "rating": "1", "purchase_url": "/dp/B07XYZ"}`}
	a := amazonAdapter(fetcher, client, nil)

	offer := a.Lookup(context.Background(), types.ProductQuery{Product: "perfume"})
	if offer.PurchaseURL != "https://www.amazon.in/dp/B07XYZ" {
		t.Errorf("expected absolutized URL, got %q", offer.PurchaseURL)
	}
}

func TestLookupCacheHitSkipsBrowser(t *testing.T) {
	cached := types.ProductOffer{ProductName: "cached", Price: "1", Rating: "5", PurchaseURL: "https://www.amazon.in/dp/C"}
	cache := &memCache{offers: map[string]types.ProductOffer{"Amazon|perfume": cached}}
	fetcher := &fakeFetcher{html: resultPage}
	a := amazonAdapter(fetcher, &fakeLLM{}, cache)

	offer := a.Lookup(context.Background(), types.ProductQuery{Product: "perfume"})
	if offer != cached {
		t.Errorf("expected cached offer, got %+v", offer)
	}
	if fetcher.calls != 0 {
		t.Errorf("cache hit should not touch the browser")
	}
}

func TestLookupStoresSuccessfulOfferInCache(t *testing.T) {
	cache := &memCache{offers: map[string]types.ProductOffer{}}
	fetcher := &fakeFetcher{html: resultPage}
	client := &fakeLLM{resp: `{"product_name": "x", "price": "1", "rating": "1", "purchase_url": "https://a"}`}
	a := amazonAdapter(fetcher, client, cache)

	a.Lookup(context.Background(), types.ProductQuery{Product: "perfume"})
	if _, ok := cache.offers["Amazon|perfume"]; !ok {
		t.Errorf("successful offer should be cached")
	}
}

func TestFlipkartSiteShape(t *testing.T) {
	fetcher := &fakeFetcher{html: `<div data-id="x">item</div>`}
	client := &fakeLLM{resp: `{"product_name": "x", "price": "1", "rating": "1", "purchase_url": "https://f"}`}
	logging.InitLogger()
	a := NewAdapter(FlipkartSite("https://www.flipkart.com"), fetcher, client, nil)

	a.Lookup(context.Background(), types.ProductQuery{Product: "perfume"})
	if !strings.Contains(fetcher.lastURL, "https://www.flipkart.com/search?q=") {
		t.Errorf("expected flipkart search URL, got %q", fetcher.lastURL)
	}
}
