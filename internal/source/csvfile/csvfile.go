// Package csvfile loads raw records from a CSV file with a configurable
// text column.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/source"
)

func init() {
	source.Register("csvfile", func() source.Source { return &CSVFile{} })
}

// DefaultColumn is the CSV column read when none is configured.
const DefaultColumn = "Data"

// CSVFile reads one raw record per CSV row from the column named in the
// source config. Blob text may itself contain newlines and pipes; the CSV
// layer's quoting handles that, which is why input is CSV and not
// line-oriented text.
type CSVFile struct{}

// Load reads the whole file into memory. The first row must be a header
// containing the configured column.
func (c *CSVFile) Load(ctx context.Context, cfg source.Config) ([]model.RawRecord, error) {
	column := cfg.Column
	if column == "" {
		column = DefaultColumn
	}

	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may carry extra columns; only ours matters

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csvfile: read header of %s: %w", cfg.Path, err)
	}
	col := -1
	for i, name := range header {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("csvfile: %s has no %q column", cfg.Path, column)
	}

	var records []model.RawRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvfile: row %d of %s: %w", line, cfg.Path, err)
		}
		if col >= len(row) {
			return nil, fmt.Errorf("csvfile: row %d of %s is missing the %q column", line, cfg.Path, column)
		}
		records = append(records, model.RawRecord{
			Data:   row[col],
			Source: "csvfile",
			Line:   line,
		})
	}
	return records, nil
}
