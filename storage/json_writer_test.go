package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"realtor-scraper/models"
)

func strPtr(s string) *string { return &s }

func TestJSONWriterNullForAbsentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "listings.json")
	w, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter: %v", err)
	}

	listings := []*models.PropertyListing{
		{URL: "https://x.test/detail/1", Price: strPtr("$200,000"), ScrapedAt: time.Now()},
	}
	if err := w.Write(listings); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if !strings.Contains(string(raw), `"bedrooms": null`) {
		t.Error("absent bedrooms should serialize as null")
	}
	if !strings.Contains(string(raw), `"price": "$200,000"`) {
		t.Error("present price should serialize as its raw text")
	}
	if !strings.Contains(string(raw), "\n  {") {
		t.Error("output should be 2-space indented")
	}

	var back []map[string]any
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(back) != 1 {
		t.Errorf("records: got %d, want 1", len(back))
	}
}

func TestJSONWriterEmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.json")
	w, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter: %v", err)
	}

	if err := w.Write(nil); err != nil {
		t.Fatalf("Write(nil): %v", err)
	}

	raw, _ := os.ReadFile(path)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("empty input should produce an empty array, got %q", raw)
	}
}
