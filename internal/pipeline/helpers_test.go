package pipeline

import (
	"sunburst-explorer/internal/model"
)

// newTable builds a table where an empty string marks a missing cell.
func newTable(columns []string, records ...[]string) model.Table {
	rows := make([]model.Row, 0, len(records))
	for _, rec := range records {
		row := make(model.Row, len(columns))
		for i, c := range columns {
			if i >= len(rec) || rec[i] == "" {
				row[c] = model.Absent()
				continue
			}
			row[c] = model.Present(rec[i])
		}
		rows = append(rows, row)
	}
	return model.Table{Name: "test", Columns: columns, Rows: rows}
}

func ticketsTable() model.Table {
	return newTable([]string{"Theme", "Sub"},
		[]string{"Billing", "Refund"},
		[]string{"Billing", "Refund"},
		[]string{"Billing", "Late Fee"},
		[]string{"Access", ""},
	)
}
