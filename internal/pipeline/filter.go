package pipeline

import (
	"sunburst-explorer/internal/model"
)

// Filter keeps the rows whose value in column equals the filter value.
// An unset filter returns the table as is.
func Filter(table model.Table, column string, filter model.FilterChoice) model.Table {
	if !filter.Valid {
		return table
	}
	var rows []model.Row
	for _, row := range table.Rows {
		v := row.Get(column)
		if !v.Missing && v.Text == filter.Value {
			rows = append(rows, row)
		}
	}
	return table.WithRows(rows)
}

// FilterOptions lists the distinct values of column in first-seen order.
// Call it on a substituted table so placeholder labels are offered too;
// missing cells are skipped.
func FilterOptions(table model.Table, column string) []string {
	seen := make(map[string]bool)
	var options []string
	for _, row := range table.Rows {
		v := row.Get(column)
		if v.Missing || seen[v.Text] {
			continue
		}
		seen[v.Text] = true
		options = append(options, v.Text)
	}
	return options
}
