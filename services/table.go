package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"realtor-scraper/models"
)

// TableColumns is the canonical column order of the tabular projection. The
// final column is derived, not scraped.
var TableColumns = []string{
	"url", "price", "bedrooms", "bathrooms", "sqft",
	"address", "city", "state", "zip_code", "property_type",
	"description", "listing_date", "lot_size", "year_built",
	"scraped_at", "price_numeric",
}

// digitRunRegexp captures the leading run of decimal digits in a cleaned
// price string.
var digitRunRegexp = regexp.MustCompile(`\d+`)

// ParsePrice extracts a numeric value from formatted price text such as
// "$1,250,000". ok is false when the text carries no digits; callers must
// treat that as "unknown", never as zero, or aggregate statistics would be
// corrupted.
func ParsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	match := digitRunRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// ToTable projects listings into a rectangular table: one row per listing in
// input order, columns per TableColumns. Absent attributes become invalid
// cells, and the derived price_numeric column stays invalid whenever the
// price is missing or unparsable. Input records are never mutated.
func ToTable(listings []*models.PropertyListing) *models.Table {
	t := &models.Table{
		Columns: append([]string(nil), TableColumns...),
		Rows:    make([][]models.Cell, 0, len(listings)),
	}

	for _, l := range listings {
		row := []models.Cell{
			{Value: string(l.URL), Valid: true},
			strCell(l.Price),
			intCell(l.Bedrooms),
			floatCell(l.Bathrooms),
			intCell(l.Sqft),
			strCell(l.Address),
			strCell(l.City),
			strCell(l.State),
			strCell(l.ZipCode),
			strCell(l.PropertyType),
			strCell(l.Description),
			strCell(l.ListingDate),
			strCell(l.LotSize),
			intCell(l.YearBuilt),
			{Value: l.ScrapedAt.Format(time.RFC3339), Valid: true},
			priceNumericCell(l.Price),
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

func strCell(s *string) models.Cell {
	if s == nil {
		return models.Cell{}
	}
	return models.Cell{Value: *s, Valid: true}
}

func intCell(n *int) models.Cell {
	if n == nil {
		return models.Cell{}
	}
	return models.Cell{Value: strconv.Itoa(*n), Valid: true}
}

func floatCell(f *float64) models.Cell {
	if f == nil {
		return models.Cell{}
	}
	return models.Cell{Value: strconv.FormatFloat(*f, 'f', -1, 64), Valid: true}
}

func priceNumericCell(price *string) models.Cell {
	if price == nil {
		return models.Cell{}
	}
	val, ok := ParsePrice(*price)
	if !ok {
		return models.Cell{}
	}
	return models.Cell{Value: strconv.FormatFloat(val, 'f', -1, 64), Valid: true}
}
