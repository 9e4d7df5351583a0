package export

import (
	"io"

	"storefront-scraper/internal/types"

	"github.com/jedib0t/go-pretty/v6/table"
)

// previewColumns is the subset of columns shown in the operator preview.
// The full 36-column table is unreadable in a terminal.
var previewColumns = table.Row{
	"Handle", "Title", "Vendor", "Type", "Variant Title", "Variant Price", "Available", "Image Position",
}

// RenderPreview prints up to limit rows as a formatted table so the
// operator can eyeball a run before exporting it.
func RenderPreview(w io.Writer, rows []types.OutputRow, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(previewColumns)

	for i, row := range rows {
		if limit > 0 && i >= limit {
			break
		}
		t.AppendRow(table.Row{
			row.Handle,
			row.Title,
			row.Vendor,
			row.Type,
			row.VariantTitle,
			row.VariantPrice,
			row.Available,
			row.ImagePosition,
		})
	}

	t.Render()
}
