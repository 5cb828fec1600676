package realtor

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"realtor-scraper/config"
	"realtor-scraper/firecrawl"
	"realtor-scraper/models"
	"realtor-scraper/utils"
)

const (
	// searchPath is appended to the site base URL before the location
	// segment.
	searchPath = "/realestateandhomes-search"

	// detailPathMarker distinguishes listing detail pages from every other
	// link a search page carries.
	detailPathMarker = "/realestateandhomes-detail/"
)

// FetchClient is the subset of the hosted fetch service the scraper consumes.
type FetchClient interface {
	Scrape(ctx context.Context, url string, opts firecrawl.ScrapeOptions) (*firecrawl.Document, error)
	Crawl(ctx context.Context, url string, opts firecrawl.CrawlOptions) ([]firecrawl.Document, error)
}

// Scraper orchestrates the listing-acquisition pipeline: crawl search
// results, extract and deduplicate detail links, fetch each listing once.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	client  FetchClient
	limiter *rate.Limiter
}

// New creates a ready-to-use Scraper. The rate limiter is shared by every
// fetch the scraper issues, sequential or pooled.
func New(cfg *config.Config, logger *utils.Logger, client FetchClient) *Scraper {
	interval := time.Duration(cfg.RateLimitMs) * time.Millisecond
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// ScrapeSearchResults crawls the search pages for a location/filter query and
// fetches every unique listing found. It always returns the listings it
// managed to collect: a failed crawl yields an empty slice, a failed listing
// fetch yields a minimal record, and neither stops the run.
func (s *Scraper) ScrapeSearchResults(ctx context.Context, location string, filters models.FilterSet) []*models.PropertyListing {
	searchURL := BuildSearchURL(s.cfg.RealtorBaseURL+searchPath, location, filters)
	s.logger.Info("[realtor] Crawling search results: %s (limit: %d pages)", searchURL, s.cfg.PageLimit)

	pages, err := s.client.Crawl(ctx, searchURL, firecrawl.CrawlOptions{
		Limit:     s.cfg.PageLimit,
		Formats:   []string{"markdown", "links"},
		WaitForMs: s.cfg.CrawlWaitMs,
	})
	if err != nil {
		s.logger.Error("[realtor] Crawl failed for %s: %v", searchURL, err)
		return []*models.PropertyListing{}
	}

	detailURLs := s.collectDetailLinks(pages)
	s.logger.Info("[realtor] Found %d unique listings across %d pages", len(detailURLs), len(pages))

	if s.cfg.MaxConcurrency > 1 {
		return s.fetchPooled(ctx, detailURLs)
	}
	return s.fetchSequential(ctx, detailURLs)
}

// collectDetailLinks filters every crawled page's links down to listing
// detail URLs and deduplicates them before any fetch happens. Order follows
// link discovery. The set is scoped to one run: repeated runs on the same
// Scraper see every listing again.
func (s *Scraper) collectDetailLinks(pages []firecrawl.Document) []models.ListingURL {
	seen := utils.NewURLSet()
	var urls []models.ListingURL
	for _, page := range pages {
		for _, link := range page.Links {
			if !strings.Contains(link, detailPathMarker) {
				continue
			}
			url := models.ListingURL(link)
			if !seen.Add(url) {
				s.logger.Debug("[realtor] Skipping duplicate: %s", url)
				continue
			}
			urls = append(urls, url)
		}
	}
	return urls
}

func (s *Scraper) fetchSequential(ctx context.Context, urls []models.ListingURL) []*models.PropertyListing {
	listings := make([]*models.PropertyListing, 0, len(urls))
	for i, url := range urls {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.Warn("[realtor] Run canceled after %d/%d listings: %v", i, len(urls), err)
			return listings
		}
		s.logger.Info("[realtor] Scraping listing %d/%d: %s", i+1, len(urls), url)
		listings = append(listings, s.ScrapeListing(ctx, url))
	}
	return listings
}

// fetchPooled fetches listings concurrently behind the shared rate gate.
// Results keep link-discovery order; slots canceled before their fetch ran
// are dropped.
func (s *Scraper) fetchPooled(ctx context.Context, urls []models.ListingURL) []*models.PropertyListing {
	results := make([]*models.PropertyListing, len(urls))
	pool := utils.NewWorkerPool(s.cfg.MaxConcurrency, s.limiter)

	for i, url := range urls {
		i, url := i, url
		pool.Submit(ctx, func() {
			results[i] = s.ScrapeListing(ctx, url)
		})
	}
	pool.Wait()

	listings := make([]*models.PropertyListing, 0, len(urls))
	for _, l := range results {
		if l != nil {
			listings = append(listings, l)
		}
	}
	return listings
}
