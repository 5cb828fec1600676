package storage

import "realtor-scraper/models"

// TableWriter persists a projected table.
type TableWriter interface {
	WriteTable(t *models.Table) error
	Close() error
}

// ListingWriter persists scraped listing records.
type ListingWriter interface {
	Write(listings []*models.PropertyListing) error
	Close() error
}
