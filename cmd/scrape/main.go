package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"realtor-scraper/config"
	"realtor-scraper/firecrawl"
	"realtor-scraper/models"
	"realtor-scraper/scraper/realtor"
	"realtor-scraper/services"
	"realtor-scraper/storage"
	"realtor-scraper/utils"
)

func main() {
	location := flag.String("location", "San-Francisco_CA", "search location, e.g. Austin_TX")
	priceMin := flag.Int("price-min", 0, "minimum price filter (0 = unset)")
	priceMax := flag.Int("price-max", 0, "maximum price filter (0 = unset)")
	bedsMin := flag.Int("beds-min", 0, "minimum bedrooms filter (0 = unset)")
	bathsMin := flag.Int("baths-min", 0, "minimum bathrooms filter (0 = unset)")
	skipDB := flag.Bool("skip-db", false, "skip PostgreSQL storage")
	flag.Parse()

	logger := utils.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Info("=== Realtor Scraping System starting ===")
	logger.Info("Config — page limit: %d | rate: %dms | retries: %d | concurrency: %d",
		cfg.PageLimit, cfg.RateLimitMs, cfg.MaxRetries, cfg.MaxConcurrency)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	filters := models.FilterSet{}
	addFilter(filters, "priceMin", *priceMin)
	addFilter(filters, "priceMax", *priceMax)
	addFilter(filters, "bedsMin", *bedsMin)
	addFilter(filters, "bathsMin", *bathsMin)

	client := firecrawl.NewClient(cfg, logger)
	realtorScraper := realtor.New(cfg, logger, client)

	listings := realtorScraper.ScrapeSearchResults(ctx, *location, filters)
	if len(listings) == 0 {
		logger.Error("No listings were scraped. Exiting.")
		os.Exit(1)
	}

	logger.Info("Scraped %d listings — exporting...", len(listings))

	table := services.ToTable(listings)

	var tableSink storage.TableWriter
	if csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath); err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		tableSink = csvWriter
	}
	if tableSink != nil {
		if err := tableSink.WriteTable(table); err != nil {
			logger.Error("CSV write failed: %v", err)
		} else {
			logger.Info("Table saved to %s", cfg.CSVOutputPath)
		}
	}

	// Record sinks share the ListingWriter contract; each failure is logged
	// and the remaining sinks still run.
	type recordSink struct {
		name   string
		writer storage.ListingWriter
	}
	var sinks []recordSink

	if jsonWriter, err := storage.NewJSONWriter(cfg.JSONOutputPath); err != nil {
		logger.Error("Failed to create JSON writer: %v", err)
	} else {
		sinks = append(sinks, recordSink{cfg.JSONOutputPath, jsonWriter})
	}

	var pgWriter *storage.PostgresWriter
	if !*skipDB {
		var err error
		pgWriter, err = storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			pgWriter = nil
		} else {
			defer pgWriter.Close()
			sinks = append(sinks, recordSink{"PostgreSQL (table: listings)", pgWriter})
		}
	}

	for _, sink := range sinks {
		if err := sink.writer.Write(listings); err != nil {
			logger.Error("Write to %s failed: %v", sink.name, err)
		} else {
			logger.Info("Records saved to %s", sink.name)
		}
	}

	// Insights run over the full stored dataset when the DB is available,
	// otherwise over this run only.
	insightInput := listings
	if pgWriter != nil {
		if stored, err := pgWriter.FetchAll(); err != nil {
			logger.Error("Failed to fetch stored listings for insights: %v", err)
		} else if len(stored) > 0 {
			insightInput = stored
		}
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(insightInput)
	insightSvc.Print(report)

	fmt.Printf("  Done. Table → %s | Records → %s\n\n", cfg.CSVOutputPath, cfg.JSONOutputPath)
}

func addFilter(filters models.FilterSet, key string, val int) {
	if val > 0 {
		filters[key] = strconv.Itoa(val)
	}
}
