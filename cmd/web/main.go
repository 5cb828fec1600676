package main

import (
	"os"

	"realtor-scraper/config"
	"realtor-scraper/firecrawl"
	"realtor-scraper/utils"
	"realtor-scraper/web"
)

func main() {
	logger := utils.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration error: %v", err)
		os.Exit(1)
	}

	client := firecrawl.NewClient(cfg, logger)

	server := web.NewServer(cfg, logger, client)
	if err := server.Run(); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
