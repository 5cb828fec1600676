package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"realtor-scraper/models"
)

// JSONWriter exports listing records as a 2-space-indented JSON array.
// Absent attributes serialize as null, never as fabricated zero values.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSONWriter targeting path. Intermediate
// directories are created automatically.
func NewJSONWriter(path string) (*JSONWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("json: create output dir: %w", err)
	}
	return &JSONWriter{path: path}, nil
}

// Write serializes the listings, truncating any previous file content.
func (w *JSONWriter) Write(listings []*models.PropertyListing) error {
	if listings == nil {
		listings = []*models.PropertyListing{}
	}

	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal listings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return fmt.Errorf("json: write file %q: %w", w.path, err)
	}
	return nil
}

// Close is a no-op; the file handle lives only for the duration of a write.
func (w *JSONWriter) Close() error { return nil }
