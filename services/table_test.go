package services

import (
	"testing"
	"time"

	"realtor-scraper/models"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"$1,250,000", 1250000, true},
		{"$450,000", 450000, true},
		{"1234", 1234, true},
		{"$99", 99, true},
		{"From $320,000", 320000, true},
		{"", 0, false},
		{"Contact agent", 0, false},
		{"$", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePrice(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParsePrice(%q) = (%.1f, %v); want (%.1f, %v)",
				tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestToTablePriceNumericDerivation(t *testing.T) {
	listings := []*models.PropertyListing{
		{URL: "https://x.test/detail/1", Price: strPtr("$1,250,000"), ScrapedAt: time.Now()},
		{URL: "https://x.test/detail/2", ScrapedAt: time.Now()},
		{URL: "https://x.test/detail/3", Price: strPtr("Call for price"), ScrapedAt: time.Now()},
	}

	table := ToTable(listings)

	cell, ok := table.Cell(0, "price_numeric")
	if !ok || !cell.Valid || cell.Value != "1250000" {
		t.Errorf("row 0 price_numeric: got %+v, want valid 1250000", cell)
	}

	cell, _ = table.Cell(1, "price_numeric")
	if cell.Valid {
		t.Errorf("missing price must yield an invalid cell, got %+v — a zero would corrupt statistics", cell)
	}

	cell, _ = table.Cell(2, "price_numeric")
	if cell.Valid {
		t.Errorf("unparsable price must yield an invalid cell, got %+v", cell)
	}
}

func TestToTableRoundTripsAttributes(t *testing.T) {
	l := &models.PropertyListing{
		URL:       "https://x.test/detail/9",
		Address:   strPtr("123 Main St"),
		City:      strPtr("Austin"),
		Bedrooms:  intPtr(4),
		ScrapedAt: time.Now(),
	}

	table := ToTable([]*models.PropertyListing{l})

	for _, tt := range []struct {
		column string
		want   string
	}{
		{"url", "https://x.test/detail/9"},
		{"address", "123 Main St"},
		{"city", "Austin"},
		{"bedrooms", "4"},
	} {
		cell, ok := table.Cell(0, tt.column)
		if !ok || !cell.Valid || cell.Value != tt.want {
			t.Errorf("column %q: got %+v, want %q", tt.column, cell, tt.want)
		}
	}

	cell, _ := table.Cell(0, "state")
	if cell.Valid {
		t.Errorf("unset state must stay invalid, got %+v", cell)
	}
}

func TestToTableFixedColumnsAndRowOrder(t *testing.T) {
	listings := []*models.PropertyListing{
		{URL: "https://x.test/detail/a", ScrapedAt: time.Now()},
		{URL: "https://x.test/detail/b", ScrapedAt: time.Now()},
	}

	table := ToTable(listings)

	if len(table.Columns) != len(TableColumns) {
		t.Fatalf("columns: got %d, want %d", len(table.Columns), len(TableColumns))
	}
	if table.Columns[0] != "url" || table.Columns[len(table.Columns)-1] != "price_numeric" {
		t.Errorf("unexpected column order: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(table.Rows))
	}

	first, _ := table.Cell(0, "url")
	second, _ := table.Cell(1, "url")
	if first.Value != "https://x.test/detail/a" || second.Value != "https://x.test/detail/b" {
		t.Error("rows must preserve input order")
	}
}

func TestToTableDoesNotMutateInput(t *testing.T) {
	price := "$300,000"
	l := &models.PropertyListing{URL: "https://x.test/detail/1", Price: &price, ScrapedAt: time.Now()}

	_ = ToTable([]*models.PropertyListing{l})

	if l.Price == nil || *l.Price != "$300,000" {
		t.Error("projection must not mutate input records")
	}
}
