package tabular

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/user/rera-scraper/internal/entity"
)

// CSVWriter persists records as a delimited file with a header row and no
// index column.
type CSVWriter struct{}

func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write creates or truncates path and writes the records in order.
func (w *CSVWriter) Write(path string, records []entity.ProjectRecord) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	if records == nil {
		records = []entity.ProjectRecord{}
	}
	if err := gocsv.MarshalFile(&records, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Read loads records previously written by Write.
func (w *CSVWriter) Read(path string) ([]entity.ProjectRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []entity.ProjectRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}
