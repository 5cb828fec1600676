package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"realtor-scraper/models"
)

// listingCols is the insert column list; the placeholder count in
// insertBatch must match it.
const listingCols = "url, price, bedrooms, bathrooms, sqft, address, city, state, " +
	"zip_code, property_type, description, listing_date, lot_size, year_built, scraped_at"

const colsPerListing = 15

// PostgresWriter persists scraped listings to PostgreSQL. Absent record
// fields are stored as SQL NULL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id            SERIAL PRIMARY KEY,
			url           TEXT UNIQUE NOT NULL,
			price         TEXT,
			bedrooms      INTEGER,
			bathrooms     NUMERIC(4,1),
			sqft          INTEGER,
			address       TEXT,
			city          TEXT,
			state         TEXT,
			zip_code      TEXT,
			property_type TEXT,
			description   TEXT,
			listing_date  TEXT,
			lot_size      TEXT,
			year_built    INTEGER,
			scraped_at    TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_listings_city       ON listings(city);
		CREATE INDEX IF NOT EXISTS idx_listings_bedrooms   ON listings(bedrooms);
		CREATE INDEX IF NOT EXISTS idx_listings_scraped_at ON listings(scraped_at);
	`)
	return err
}

// Write batch-inserts the listings. Re-scraped URLs are skipped, so repeated
// runs never duplicate rows.
func (pw *PostgresWriter) Write(listings []*models.PropertyListing) error {
	if len(listings) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.PropertyListing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*colsPerListing)

	for idx, l := range batch {
		base := idx * colsPerListing
		placeholders := make([]string, colsPerListing)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			string(l.URL), l.Price, l.Bedrooms, l.Bathrooms, l.Sqft,
			l.Address, l.City, l.State, l.ZipCode, l.PropertyType,
			l.Description, l.ListingDate, l.LotSize, l.YearBuilt, l.ScrapedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (%s)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, listingCols, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// FetchAll retrieves all stored listings ordered by insertion.
func (pw *PostgresWriter) FetchAll() ([]*models.PropertyListing, error) {
	rows, err := pw.db.Query(fmt.Sprintf(`
		SELECT %s FROM listings ORDER BY id
	`, listingCols))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.PropertyListing
	for rows.Next() {
		l := &models.PropertyListing{}
		var url string
		if err := rows.Scan(
			&url, &l.Price, &l.Bedrooms, &l.Bathrooms, &l.Sqft,
			&l.Address, &l.City, &l.State, &l.ZipCode, &l.PropertyType,
			&l.Description, &l.ListingDate, &l.LotSize, &l.YearBuilt, &l.ScrapedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		l.URL = models.ListingURL(url)
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
