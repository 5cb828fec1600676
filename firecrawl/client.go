package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"realtor-scraper/config"
	"realtor-scraper/utils"
)

const (
	scrapePath = "/v1/scrape"
	crawlPath  = "/v1/crawl"
)

// Client talks to the hosted Firecrawl API. It is the only component in the
// repository that performs network I/O; everything behind it (rendering,
// crawling, anti-bot handling) is the service's problem.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	logger       *utils.Logger
	retry        *utils.RetryConfig
	pollInterval time.Duration
}

// NewClient creates a ready-to-use Client from the application config.
func NewClient(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		apiKey:     cfg.FirecrawlAPIKey,
		baseURL:    cfg.FirecrawlBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		pollInterval: time.Duration(cfg.PollIntervalMs) * time.Millisecond,
	}
}

type scrapeRequest struct {
	URL             string       `json:"url"`
	Formats         []string     `json:"formats"`
	OnlyMainContent bool         `json:"onlyMainContent,omitempty"`
	Extract         *extractSpec `json:"extract,omitempty"`
}

type extractSpec struct {
	Schema map[string]any `json:"schema"`
}

type scrapeResponse struct {
	Success bool     `json:"success"`
	Data    Document `json:"data"`
	Error   string   `json:"error"`
}

type crawlRequest struct {
	URL           string           `json:"url"`
	Limit         int              `json:"limit"`
	ScrapeOptions crawlPageOptions `json:"scrapeOptions"`
}

type crawlPageOptions struct {
	Formats []string `json:"formats"`
	WaitFor int      `json:"waitFor,omitempty"`
}

type crawlSubmitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error"`
}

type crawlStatusResponse struct {
	Status string     `json:"status"`
	Data   []Document `json:"data"`
	Error  string     `json:"error"`
}

// Scrape fetches a single URL through the service and returns its Document.
func (c *Client) Scrape(ctx context.Context, url string, opts ScrapeOptions) (*Document, error) {
	req := scrapeRequest{
		URL:             url,
		Formats:         opts.Formats,
		OnlyMainContent: opts.OnlyMainContent,
	}
	if opts.ExtractSchema != nil {
		req.Extract = &extractSpec{Schema: opts.ExtractSchema}
	}

	var resp scrapeResponse
	if err := c.do(ctx, http.MethodPost, scrapePath, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("firecrawl: scrape rejected: %s", resp.Error)
	}
	return &resp.Data, nil
}

// Crawl submits a crawl job bounded by opts.Limit pages and blocks until the
// service reports it finished, polling at the configured interval. The
// returned slice holds one Document per crawled page.
func (c *Client) Crawl(ctx context.Context, url string, opts CrawlOptions) ([]Document, error) {
	req := crawlRequest{
		URL:   url,
		Limit: opts.Limit,
		ScrapeOptions: crawlPageOptions{
			Formats: opts.Formats,
			WaitFor: opts.WaitForMs,
		},
	}

	var submitted crawlSubmitResponse
	if err := c.do(ctx, http.MethodPost, crawlPath, req, &submitted); err != nil {
		return nil, err
	}
	if !submitted.Success || submitted.ID == "" {
		return nil, fmt.Errorf("firecrawl: crawl rejected: %s", submitted.Error)
	}

	c.logger.Debug("[firecrawl] Crawl job %s accepted, polling...", submitted.ID)

	for {
		select {
		case <-time.After(c.pollInterval):
		case <-ctx.Done():
			return nil, fmt.Errorf("firecrawl: crawl %s canceled: %w", submitted.ID, ctx.Err())
		}

		var status crawlStatusResponse
		if err := c.do(ctx, http.MethodGet, crawlPath+"/"+submitted.ID, nil, &status); err != nil {
			return nil, err
		}

		switch status.Status {
		case "completed":
			c.logger.Debug("[firecrawl] Crawl job %s completed with %d pages", submitted.ID, len(status.Data))
			return status.Data, nil
		case "failed", "cancelled":
			return nil, fmt.Errorf("firecrawl: crawl %s ended with status %q: %s",
				submitted.ID, status.Status, status.Error)
		default:
			c.logger.Debug("[firecrawl] Crawl job %s status: %s", submitted.ID, status.Status)
		}
	}
}

// do performs one authenticated JSON round-trip with retry.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	return c.retry.Do(ctx, method+" "+path, func() error {
		var body io.Reader
		if payload != nil {
			raw, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("firecrawl: encode request: %w", err)
			}
			body = bytes.NewReader(raw)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return fmt.Errorf("firecrawl: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("firecrawl: %s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("firecrawl: read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("firecrawl: %s %s returned HTTP %d: %s",
				method, path, resp.StatusCode, truncateBody(raw))
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("firecrawl: decode response: %w", err)
		}
		return nil
	})
}

func truncateBody(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
