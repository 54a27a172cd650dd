package domain

// Product is one catalog entry from the scraper's products file.
// Key is the raw product_key from the feed and may be empty; optional
// fields normalize to "" when absent.
type Product struct {
	Key             string
	Name            string
	PackagingFormat string
	Image           string
}

// PriceSnapshot is one entry from the scraper's append-only snapshot log.
// Price is an opaque formatted value, not a number. ScrapedAt is an
// ISO-8601 timestamp and is ordered lexicographically; that is correct
// only while the scraper emits a uniform precision and zone.
type PriceSnapshot struct {
	ProductKey string
	Store      string
	Price      string
	UnitPrice  string
	SourceURL  string
	ScrapedAt  string
}

// ProductView is the denormalized listing shape: product display fields
// with the latest snapshot's price fields flattened in. Price fields are
// pointers so that a product without price data serializes them as null.
type ProductView struct {
	ProductKey      string  `json:"product_key"`
	Name            string  `json:"name"`
	PackagingFormat *string `json:"packaging_format"`
	Image           *string `json:"image"`
	Price           *string `json:"price"`
	UnitPrice       *string `json:"unit_price"`
	SourceURL       *string `json:"source_url"`
	ScrapedAt       *string `json:"scraped_at"`
}

// StorePrice is one store's latest observed price for a product.
type StorePrice struct {
	Price     string  `json:"price"`
	UnitPrice *string `json:"unit_price"`
	SourceURL *string `json:"source_url"`
	ScrapedAt string  `json:"scraped_at"`
}

// ProductCompareView maps store names to their latest price for one
// requested product key. A key with no catalog match still produces a
// view, carrying the bare key as Name.
type ProductCompareView struct {
	ProductKey      string                `json:"product_key"`
	Name            string                `json:"name"`
	PackagingFormat *string               `json:"packaging_format"`
	Image           *string               `json:"image"`
	Prices          map[string]StorePrice `json:"prices"`
}
