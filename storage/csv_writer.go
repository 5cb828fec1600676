package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"realtor-scraper/models"
)

// CSVWriter writes a projected table to a CSV file: one header row of column
// names, one row per listing, invalid cells left empty. It is safe for
// concurrent use.
type CSVWriter struct {
	mu   sync.Mutex
	path string
}

// NewCSVWriter creates a CSVWriter targeting path. Intermediate directories
// are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{path: path}, nil
}

// WriteTable writes the table, truncating any previous file content.
func (c *CSVWriter) WriteTable(t *models.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", c.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for _, cells := range t.Rows {
		for i := range row {
			row[i] = ""
			if i < len(cells) && cells[i].Valid {
				row[i] = cells[i].Value
			}
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// Close is a no-op; the file handle lives only for the duration of a write.
func (c *CSVWriter) Close() error { return nil }
