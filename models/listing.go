package models

import "time"

// ListingURL uniquely identifies a listing within a result set. Identity is
// the exact detail-page URL string; two listings with the same URL are the
// same listing.
type ListingURL string

// PropertyListing is one scraped real-estate listing. Every field other than
// URL and ScrapedAt is optional: a nil pointer means the source did not
// provide a value. Absent values are never defaulted: a listing without a
// price has Price == nil, not "0".
type PropertyListing struct {
	URL          ListingURL `json:"url"`
	Price        *string    `json:"price"`
	Bedrooms     *int       `json:"bedrooms"`
	Bathrooms    *float64   `json:"bathrooms"`
	Sqft         *int       `json:"sqft"`
	Address      *string    `json:"address"`
	City         *string    `json:"city"`
	State        *string    `json:"state"`
	ZipCode      *string    `json:"zip_code"`
	PropertyType *string    `json:"property_type"`
	Description  *string    `json:"description"`
	ListingDate  *string    `json:"listing_date"`
	LotSize      *string    `json:"lot_size"`
	YearBuilt    *int       `json:"year_built"`
	ScrapedAt    time.Time  `json:"scraped_at"`
}

// NewPropertyListing creates a listing for url. ScrapedAt is stamped exactly
// once here and never mutated afterwards.
func NewPropertyListing(url ListingURL) *PropertyListing {
	return &PropertyListing{URL: url, ScrapedAt: time.Now()}
}

// FilterSet holds caller-supplied search constraints ("priceMin", "priceMax",
// "bedsMin", "bathsMin") mapped to preformatted values. Keys the URL builder
// does not recognize are ignored; absent keys emit no query term.
type FilterSet map[string]string

// InsightReport holds the computed analytics over a scraped dataset.
type InsightReport struct {
	TotalListings   int
	WithPrice       int
	AveragePrice    float64
	MinPrice        float64
	MaxPrice        float64
	AvgPricePerSqft float64
	MostExpensive   *PropertyListing
	ListingsByCity  map[string]int
}
