package types

const NotAvailable = "N/A"

// ProductQuery is the structured form of a free-text product search,
// produced by the extractor agent. Fields absent in the input stay empty.
type ProductQuery struct {
	Product      string `json:"product"`
	Quantity     string `json:"quantity,omitempty"`
	PriceMax     string `json:"price_max,omitempty"`
	OtherFilters string `json:"other_filters,omitempty"`
}

// ProductOffer is one marketplace's best deal for a query, or the
// fallback record when scraping fails.
type ProductOffer struct {
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	PurchaseURL string `json:"purchase_url"`
}

// UnavailableOffer is the fixed record returned when a marketplace scrape
// fails for any reason. homeURL points at the marketplace front page.
func UnavailableOffer(homeURL string) ProductOffer {
	return ProductOffer{
		ProductName: "Error retrieving product",
		Price:       NotAvailable,
		Rating:      NotAvailable,
		PurchaseURL: homeURL,
	}
}

// Unavailable reports whether the offer is the fallback record.
func (o ProductOffer) Unavailable() bool {
	return o.Price == NotAvailable && o.Rating == NotAvailable
}
