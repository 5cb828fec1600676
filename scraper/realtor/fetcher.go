package realtor

import (
	"context"

	"realtor-scraper/firecrawl"
	"realtor-scraper/models"
	"realtor-scraper/utils"
)

// summaryPreviewLen bounds the description stored by the simplified fetch.
const summaryPreviewLen = 500

// ScrapeListing fetches one listing through structured extraction. Whatever
// subset of fields the service returns is applied to the record; fields it
// omits stay unset. On any failure the error is logged and a minimal record
// (URL + ScrapedAt only) comes back, so one bad listing never aborts a batch.
func (s *Scraper) ScrapeListing(ctx context.Context, url models.ListingURL) *models.PropertyListing {
	listing := models.NewPropertyListing(url)

	doc, err := s.client.Scrape(ctx, string(url), firecrawl.ScrapeOptions{
		Formats:       []string{"extract"},
		ExtractSchema: firecrawl.ListingSchema(),
	})
	if err != nil {
		s.logger.Warn("[realtor] Listing fetch failed for %s: %v", url, err)
		return listing
	}

	if doc.Extract != nil {
		applyFields(listing, doc.Extract)
	}
	return listing
}

// ScrapeListingSummary is the lower-fidelity alternative to ScrapeListing:
// it requests only rendered text and keeps a bounded prefix as the
// description. Same failure contract as ScrapeListing.
func (s *Scraper) ScrapeListingSummary(ctx context.Context, url models.ListingURL) *models.PropertyListing {
	listing := models.NewPropertyListing(url)

	doc, err := s.client.Scrape(ctx, string(url), firecrawl.ScrapeOptions{
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
	})
	if err != nil {
		s.logger.Warn("[realtor] Summary fetch failed for %s: %v", url, err)
		return listing
	}

	if doc.Markdown != "" {
		desc := utils.TruncateRunes(doc.Markdown, summaryPreviewLen)
		listing.Description = &desc
	}
	return listing
}

// applyFields copies extracted fields onto the record, converting the wire
// format's JSON numbers to the record's integer fields where appropriate.
func applyFields(l *models.PropertyListing, f *firecrawl.ListingFields) {
	l.Price = f.Price
	l.Bedrooms = toIntPtr(f.Bedrooms)
	l.Bathrooms = f.Bathrooms
	l.Sqft = toIntPtr(f.Sqft)
	l.Address = f.Address
	l.City = f.City
	l.State = f.State
	l.ZipCode = f.ZipCode
	l.PropertyType = f.PropertyType
	l.Description = f.Description
	l.LotSize = f.LotSize
	l.YearBuilt = toIntPtr(f.YearBuilt)
}

func toIntPtr(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
