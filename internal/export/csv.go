package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"rightmove-engine/internal/domain"
)

// CSVWriter saves a crawl's records to a CSV file, one row per property.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write saves all records, creating the output directory if needed.
// Columns: Price, Beds, Location, Description, URL.
func (w *CSVWriter) Write(records []domain.PropertyRecord) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	defer cw.Flush()

	_ = cw.Write([]string{"Price", "Beds", "Location", "Description", "URL"})
	for _, r := range records {
		_ = cw.Write([]string{
			strconv.Itoa(r.Price),
			strconv.Itoa(r.Beds),
			r.Address,
			r.Description,
			r.URL,
		})
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	return nil
}
