package model

// Value is a single table cell. Missing marks cells that were empty or held
// one of the NA markers at load time.
type Value struct {
	Text    string `json:"text"`
	Missing bool   `json:"missing"`
}

// Present builds a non-missing Value.
func Present(text string) Value {
	return Value{Text: text}
}

// Absent builds a missing Value.
func Absent() Value {
	return Value{Missing: true}
}

// Row is a schema-agnostic mapping from column name to cell value
type Row map[string]Value

// Get returns the value for column, treating an absent key as missing.
func (r Row) Get(column string) Value {
	v, ok := r[column]
	if !ok {
		return Absent()
	}
	return v
}

// Table is an ordered sequence of rows sharing a header.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"-"`
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether column is part of the header.
func (t Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// WithRows returns a table sharing t's header with a different row set.
func (t Table) WithRows(rows []Row) Table {
	return Table{Name: t.Name, Columns: t.Columns, Rows: rows}
}

// Cells flattens the table into header-ordered cells; missing cells are nil.
func (t Table) Cells() [][]*string {
	out := make([][]*string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]*string, len(t.Columns))
		for i, c := range t.Columns {
			v := row.Get(c)
			if v.Missing {
				continue
			}
			text := v.Text
			cells[i] = &text
		}
		out = append(out, cells)
	}
	return out
}

// TableFromCells is the inverse of Table.Cells.
func TableFromCells(name string, columns []string, cells [][]*string) Table {
	rows := make([]Row, 0, len(cells))
	for _, rec := range cells {
		row := make(Row, len(columns))
		for i, c := range columns {
			if i >= len(rec) || rec[i] == nil {
				row[c] = Absent()
				continue
			}
			row[c] = Present(*rec[i])
		}
		rows = append(rows, row)
	}
	return Table{Name: name, Columns: columns, Rows: rows}
}
