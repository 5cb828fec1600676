package realtor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"realtor-scraper/config"
	"realtor-scraper/firecrawl"
	"realtor-scraper/models"
	"realtor-scraper/utils"
)

// fakeClient is a FetchClient test double that records scrape calls.
type fakeClient struct {
	mu          sync.Mutex
	scrapeCalls []string

	pages    []firecrawl.Document
	crawlErr error
	scrapeFn func(url string) (*firecrawl.Document, error)
}

func (f *fakeClient) Scrape(_ context.Context, url string, _ firecrawl.ScrapeOptions) (*firecrawl.Document, error) {
	f.mu.Lock()
	f.scrapeCalls = append(f.scrapeCalls, url)
	f.mu.Unlock()

	if f.scrapeFn != nil {
		return f.scrapeFn(url)
	}
	return &firecrawl.Document{}, nil
}

func (f *fakeClient) Crawl(_ context.Context, _ string, _ firecrawl.CrawlOptions) ([]firecrawl.Document, error) {
	if f.crawlErr != nil {
		return nil, f.crawlErr
	}
	return f.pages, nil
}

func testConfig() *config.Config {
	return &config.Config{
		RealtorBaseURL: "https://www.realtor.com",
		PageLimit:      2,
		RateLimitMs:    1,
		MaxRetries:     1,
		MaxConcurrency: 1,
	}
}

func newTestScraper(client FetchClient) *Scraper {
	return New(testConfig(), utils.NewLogger(), client)
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

const (
	detailA = "https://www.realtor.com/realestateandhomes-detail/A"
	detailB = "https://www.realtor.com/realestateandhomes-detail/B"
	otherB  = "https://www.realtor.com/other/B"
)

func TestScrapeSearchResultsDeduplicatesBeforeFetch(t *testing.T) {
	client := &fakeClient{
		pages: []firecrawl.Document{
			{Links: []string{detailA, detailA}},
			{Links: []string{otherB}},
		},
	}
	s := newTestScraper(client)

	listings := s.ScrapeSearchResults(context.Background(), "Austin_TX", nil)

	if len(listings) != 1 {
		t.Fatalf("listings: got %d, want 1", len(listings))
	}
	if len(client.scrapeCalls) != 1 || client.scrapeCalls[0] != detailA {
		t.Errorf("scrape calls: got %v, want exactly one for %s", client.scrapeCalls, detailA)
	}
	if listings[0].URL != models.ListingURL(detailA) {
		t.Errorf("listing URL: got %s, want %s", listings[0].URL, detailA)
	}
}

func TestScrapeSearchResultsStatelessAcrossRuns(t *testing.T) {
	client := &fakeClient{
		pages: []firecrawl.Document{{Links: []string{detailA, detailB}}},
	}
	s := newTestScraper(client)

	first := s.ScrapeSearchResults(context.Background(), "Austin_TX", nil)
	second := s.ScrapeSearchResults(context.Background(), "Austin_TX", nil)

	if len(first) != 2 {
		t.Fatalf("first run listings: got %d, want 2", len(first))
	}
	if len(second) != 2 {
		t.Fatalf("second run on the same scraper: got %d listings, want 2 (dedup must not leak across runs)", len(second))
	}
	if len(client.scrapeCalls) != 4 {
		t.Errorf("scrape calls: got %d, want 4 (both runs fetch every listing)", len(client.scrapeCalls))
	}
}

func TestScrapeSearchResultsCrawlFailureYieldsEmptyResult(t *testing.T) {
	client := &fakeClient{crawlErr: errors.New("service unavailable")}
	s := newTestScraper(client)

	listings := s.ScrapeSearchResults(context.Background(), "Austin_TX", nil)

	if listings == nil {
		t.Fatal("crawl failure must yield an empty slice, not nil")
	}
	if len(listings) != 0 {
		t.Errorf("listings: got %d, want 0", len(listings))
	}
	if len(client.scrapeCalls) != 0 {
		t.Errorf("no per-item fetch should run after a failed crawl, got %d", len(client.scrapeCalls))
	}
}

func TestScrapeSearchResultsIsolatesItemFailures(t *testing.T) {
	client := &fakeClient{
		pages: []firecrawl.Document{{Links: []string{detailA, detailB}}},
		scrapeFn: func(url string) (*firecrawl.Document, error) {
			if url == detailA {
				return nil, errors.New("network error")
			}
			return &firecrawl.Document{Extract: &firecrawl.ListingFields{
				Price: strPtr("$500,000"),
				City:  strPtr("Austin"),
			}}, nil
		},
	}
	s := newTestScraper(client)

	listings := s.ScrapeSearchResults(context.Background(), "Austin_TX", nil)

	if len(listings) != 2 {
		t.Fatalf("listings: got %d, want 2 (failed item must not halt the batch)", len(listings))
	}

	failed := listings[0]
	if failed.URL != models.ListingURL(detailA) {
		t.Errorf("failed listing URL: got %s, want %s", failed.URL, detailA)
	}
	if failed.Price != nil || failed.City != nil || failed.Bedrooms != nil || failed.Description != nil {
		t.Error("failed fetch must produce a minimal record with every optional field unset")
	}
	if failed.ScrapedAt.IsZero() {
		t.Error("failed fetch record must still carry ScrapedAt")
	}

	ok := listings[1]
	if ok.Price == nil || *ok.Price != "$500,000" {
		t.Errorf("second listing price: got %v, want $500,000", ok.Price)
	}
}

func TestScrapeListingAppliesExtractedFields(t *testing.T) {
	client := &fakeClient{
		scrapeFn: func(string) (*firecrawl.Document, error) {
			return &firecrawl.Document{Extract: &firecrawl.ListingFields{
				Price:        strPtr("$1,250,000"),
				Bedrooms:     f64Ptr(3),
				Bathrooms:    f64Ptr(2.5),
				Sqft:         f64Ptr(1850),
				City:         strPtr("Austin"),
				State:        strPtr("TX"),
				YearBuilt:    f64Ptr(1998),
				PropertyType: strPtr("Single Family"),
			}}, nil
		},
	}
	s := newTestScraper(client)

	l := s.ScrapeListing(context.Background(), detailA)

	if l.Bedrooms == nil || *l.Bedrooms != 3 {
		t.Errorf("Bedrooms: got %v, want 3", l.Bedrooms)
	}
	if l.Bathrooms == nil || *l.Bathrooms != 2.5 {
		t.Errorf("Bathrooms: got %v, want 2.5", l.Bathrooms)
	}
	if l.Sqft == nil || *l.Sqft != 1850 {
		t.Errorf("Sqft: got %v, want 1850", l.Sqft)
	}
	if l.YearBuilt == nil || *l.YearBuilt != 1998 {
		t.Errorf("YearBuilt: got %v, want 1998", l.YearBuilt)
	}
	if l.Address != nil || l.ZipCode != nil {
		t.Error("fields the service omitted must stay unset")
	}
}

func TestScrapeListingIdempotentExceptScrapedAt(t *testing.T) {
	client := &fakeClient{
		scrapeFn: func(string) (*firecrawl.Document, error) {
			return &firecrawl.Document{Extract: &firecrawl.ListingFields{
				Price: strPtr("$400,000"),
				City:  strPtr("Denver"),
			}}, nil
		},
	}
	s := newTestScraper(client)

	a := s.ScrapeListing(context.Background(), detailA)
	b := s.ScrapeListing(context.Background(), detailA)

	if a.URL != b.URL {
		t.Errorf("URL differs: %s vs %s", a.URL, b.URL)
	}
	if *a.Price != *b.Price || *a.City != *b.City {
		t.Error("populated fields must match across identical fetches")
	}
}

func TestScrapeListingSummaryBoundsDescription(t *testing.T) {
	long := strings.Repeat("x", 1200)
	client := &fakeClient{
		scrapeFn: func(string) (*firecrawl.Document, error) {
			return &firecrawl.Document{Markdown: long}, nil
		},
	}
	s := newTestScraper(client)

	l := s.ScrapeListingSummary(context.Background(), detailA)

	if l.Description == nil {
		t.Fatal("Description should be set from rendered text")
	}
	if len(*l.Description) != summaryPreviewLen {
		t.Errorf("Description length: got %d, want %d", len(*l.Description), summaryPreviewLen)
	}
}

func TestScrapeListingSummaryKeepsRuneBoundaries(t *testing.T) {
	long := strings.Repeat("é", 1200)
	client := &fakeClient{
		scrapeFn: func(string) (*firecrawl.Document, error) {
			return &firecrawl.Document{Markdown: long}, nil
		},
	}
	s := newTestScraper(client)

	l := s.ScrapeListingSummary(context.Background(), detailA)

	if l.Description == nil {
		t.Fatal("Description should be set from rendered text")
	}
	if got := utf8.RuneCountInString(*l.Description); got != summaryPreviewLen {
		t.Errorf("Description length: got %d runes, want %d", got, summaryPreviewLen)
	}
	if !utf8.ValidString(*l.Description) {
		t.Error("truncation split a multi-byte character")
	}
}

func TestScrapeSearchResultsPooledPreservesOrder(t *testing.T) {
	client := &fakeClient{
		pages: []firecrawl.Document{{Links: []string{detailA, detailB}}},
	}
	cfg := testConfig()
	cfg.MaxConcurrency = 4
	s := New(cfg, utils.NewLogger(), client)

	listings := s.ScrapeSearchResults(context.Background(), "Austin_TX", nil)

	if len(listings) != 2 {
		t.Fatalf("listings: got %d, want 2", len(listings))
	}
	if listings[0].URL != models.ListingURL(detailA) || listings[1].URL != models.ListingURL(detailB) {
		t.Errorf("pooled results out of discovery order: %s, %s", listings[0].URL, listings[1].URL)
	}
}
