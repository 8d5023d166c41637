package pipeline

import (
	"fmt"
	"strings"

	"sunburst-explorer/internal/model"
)

// DefaultPlaceholderFormat yields labels like "Unknown Channel".
const DefaultPlaceholderFormat = "Unknown %s"

// Placeholder returns the label substituted for missing cells of column.
// A format without a verb is used verbatim for every column.
func Placeholder(format, column string) string {
	if format == "" {
		format = DefaultPlaceholderFormat
	}
	if !strings.Contains(format, "%s") {
		return format
	}
	return fmt.Sprintf(format, column)
}

// Substitute replaces missing cells in the selected columns with their
// placeholder label. Other columns are left untouched and the input table is
// not modified.
func Substitute(table model.Table, columns []string, format string) model.Table {
	labels := make(map[string]string, len(columns))
	for _, c := range columns {
		labels[c] = Placeholder(format, c)
	}

	rows := make([]model.Row, len(table.Rows))
	for i, row := range table.Rows {
		out := make(model.Row, len(row)+len(columns))
		for k, v := range row {
			out[k] = v
		}
		for c, label := range labels {
			if row.Get(c).Missing {
				out[c] = model.Present(label)
			}
		}
		rows[i] = out
	}
	return table.WithRows(rows)
}
