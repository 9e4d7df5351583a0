// Package export serializes the flat row collection. CSV and JSON are
// produced from the same rows with the same field names, so the two
// formats never diverge.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"storefront-scraper/internal/types"
)

// Format names an export serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Write serializes rows to w in the requested format.
func Write(w io.Writer, format Format, rows []types.OutputRow) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteCSV writes a header row followed by one physical row per OutputRow.
func WriteCSV(w io.Writer, rows []types.OutputRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(rowValues(row)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rows as an indented JSON array of objects whose
// field names match the CSV column headers.
func WriteJSON(w io.Writer, rows []types.OutputRow) error {
	if rows == nil {
		rows = []types.OutputRow{}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
