package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"dealbot/dealbot/services/llm"
	"dealbot/dealbot/services/scraper"
	"dealbot/dealbot/types"
	"dealbot/dealbot/utils/jsonutils"
	"dealbot/dealbot/utils/logging"
)

// PageFetcher abstracts the headless browser for tests.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// OfferCache is an optional lookaside cache for scraped offers.
type OfferCache interface {
	GetOffer(ctx context.Context, key string) (types.ProductOffer, bool)
	PutOffer(ctx context.Context, key string, offer types.ProductOffer)
}

// Site describes one marketplace: how to reach its search page and how
// to trim the result HTML down to product cards.
type Site struct {
	Name         string
	HomeURL      string
	SearchPath   string // printf pattern taking the escaped query
	CardSelector string
}

func AmazonSite(baseURL string) Site {
	return Site{
		Name:         "Amazon",
		HomeURL:      baseURL,
		SearchPath:   "/s?k=%s",
		CardSelector: `div[data-component-type="s-search-result"]`,
	}
}

func FlipkartSite(baseURL string) Site {
	return Site{
		Name:         "Flipkart",
		HomeURL:      baseURL,
		SearchPath:   "/search?q=%s",
		CardSelector: `div[data-id]`,
	}
}

// Adapter drives one marketplace: fetch the search page, hand the page
// text to the LLM with the four-field instruction, parse the offer.
type Adapter struct {
	site    Site
	fetcher PageFetcher
	llm     llm.Client
	cache   OfferCache
}

func NewAdapter(site Site, fetcher PageFetcher, client llm.Client, cache OfferCache) *Adapter {
	return &Adapter{site: site, fetcher: fetcher, llm: client, cache: cache}
}

func (a *Adapter) SiteName() string { return a.site.Name }

const maxPageChars = 6000

const taskTemplate = `Find product information on %[1]s:
- Product: %[2]s

- Required details:
    1. Full product name (exact as shown on %[1]s)
    2. Current minimum price
    3. Average rating
    4. Direct purchase URL
- Format response as structured JSON data with these keys: "product_name", "price", "rating", "purchase_url"
- If multiple sellers exist, return the lowest price option from a reputable seller
- If the product is not available on %[1]s, set "product_name" to "Product not available on %[1]s" and "price" and "rating" to "N/A"
- Note: Return only factual information as displayed on the %[1]s search page

Search page content:
%[3]s
`

// Lookup returns the best offer for the query. It never returns an
// error: any failure along the way yields the fixed fallback record
// pointing at the marketplace home page.
func (a *Adapter) Lookup(ctx context.Context, query types.ProductQuery) types.ProductOffer {
	defer logging.LogDuration(ctx, "marketplace_lookup_"+strings.ToLower(a.site.Name))()

	search := searchTerms(query)
	cacheKey := a.site.Name + "|" + search

	if a.cache != nil {
		if offer, ok := a.cache.GetOffer(ctx, cacheKey); ok {
			return offer
		}
	}

	offer, err := a.lookup(ctx, search)
	if err != nil {
		logging.ErrorLogger.Error("marketplace lookup failed",
			zap.String("site", a.site.Name), zap.Error(err))
		return types.UnavailableOffer(a.site.HomeURL)
	}

	if a.cache != nil && !offer.Unavailable() {
		a.cache.PutOffer(ctx, cacheKey, offer)
	}
	return offer
}

func (a *Adapter) lookup(ctx context.Context, search string) (types.ProductOffer, error) {
	searchURL := a.site.HomeURL + fmt.Sprintf(a.site.SearchPath, url.QueryEscape(search))

	html, err := a.fetcher.FetchHTML(ctx, searchURL)
	if err != nil {
		return types.ProductOffer{}, fmt.Errorf("fetch %s: %w", searchURL, err)
	}

	pageText := scraper.Truncate(scraper.TrimToSelector(html, a.site.CardSelector, 8), maxPageChars)
	if strings.TrimSpace(pageText) == "" {
		return types.ProductOffer{}, fmt.Errorf("empty page content from %s", searchURL)
	}

	resp, err := a.llm.Run(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "user", Content: fmt.Sprintf(taskTemplate, a.site.Name, search, pageText)},
		},
	})
	if err != nil {
		return types.ProductOffer{}, fmt.Errorf("llm extraction: %w", err)
	}

	var offer types.ProductOffer
	if err := json.Unmarshal([]byte(jsonutils.ExtractJSON(resp)), &offer); err != nil {
		return types.ProductOffer{}, fmt.Errorf("parse offer: %w", err)
	}
	if offer.ProductName == "" {
		return types.ProductOffer{}, fmt.Errorf("offer missing product_name")
	}
	offer.PurchaseURL = a.resolveURL(offer.PurchaseURL)
	if offer.Price == "" {
		offer.Price = types.NotAvailable
	}
	if offer.Rating == "" {
		offer.Rating = types.NotAvailable
	}
	return offer, nil
}

// resolveURL absolutizes product links scraped as site-relative paths.
func (a *Adapter) resolveURL(raw string) string {
	if raw == "" {
		return a.site.HomeURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return a.site.HomeURL
	}
	if u.IsAbs() {
		return raw
	}
	base, err := url.Parse(a.site.HomeURL)
	if err != nil {
		return a.site.HomeURL
	}
	return base.ResolveReference(u).String()
}

func searchTerms(query types.ProductQuery) string {
	parts := []string{query.Product}
	if query.Quantity != "" {
		parts = append(parts, query.Quantity)
	}
	if query.OtherFilters != "" {
		parts = append(parts, query.OtherFilters)
	}
	return strings.Join(parts, " ")
}
