package firecrawl

// Document is one fetched page as returned by the service: rendered markdown,
// the page's outbound links, and (when requested) structured extraction.
type Document struct {
	Markdown string         `json:"markdown"`
	Links    []string       `json:"links"`
	Extract  *ListingFields `json:"extract"`
}

// ListingFields is the structured-extraction result for a listing detail
// page. Numeric fields arrive as JSON numbers, so they decode as floats even
// when the site shows integers. Missing fields stay nil.
type ListingFields struct {
	Price        *string  `json:"price"`
	Bedrooms     *float64 `json:"bedrooms"`
	Bathrooms    *float64 `json:"bathrooms"`
	Sqft         *float64 `json:"sqft"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	ZipCode      *string  `json:"zip_code"`
	PropertyType *string  `json:"property_type"`
	Description  *string  `json:"description"`
	LotSize      *string  `json:"lot_size"`
	YearBuilt    *float64 `json:"year_built"`
}

// ScrapeOptions controls a single-page scrape request.
type ScrapeOptions struct {
	Formats         []string
	ExtractSchema   map[string]any
	OnlyMainContent bool
}

// CrawlOptions controls a multi-page crawl request. Limit bounds the number
// of pages crawled; WaitForMs gives client-rendered pages time to settle.
type CrawlOptions struct {
	Limit     int
	Formats   []string
	WaitForMs int
}

// ListingSchema is the fixed JSON schema requested for structured listing
// extraction.
func ListingSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"price":         map[string]any{"type": "string"},
			"bedrooms":      map[string]any{"type": "number"},
			"bathrooms":     map[string]any{"type": "number"},
			"sqft":          map[string]any{"type": "number"},
			"address":       map[string]any{"type": "string"},
			"city":          map[string]any{"type": "string"},
			"state":         map[string]any{"type": "string"},
			"zip_code":      map[string]any{"type": "string"},
			"property_type": map[string]any{"type": "string"},
			"description":   map[string]any{"type": "string"},
			"lot_size":      map[string]any{"type": "string"},
			"year_built":    map[string]any{"type": "number"},
		},
	}
}
