package dataset

// Row is one record of a table. Missing keys read as nil.
type Row map[string]any

// Table is an ordered tabular dataset: a column list plus rows. Conversion
// batches never mutate their input table; they work on a Clone.
type Table struct {
	columns []string
	rows    []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	t := &Table{columns: make([]string, 0, len(columns))}
	t.columns = append(t.columns, columns...)
	return t
}

// Columns returns a copy of the column names in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column if it is not already declared.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Append adds a row to the end of the table.
func (t *Table) Append(row Row) {
	if row == nil {
		row = Row{}
	}
	t.rows = append(t.rows, row)
}

// Row returns the i-th row. The returned map is the live row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Value returns a single cell, nil when the row has no value for the column.
func (t *Table) Value(i int, column string) any {
	return t.rows[i][column]
}

// Set assigns a single cell.
func (t *Table) Set(i int, column string, value any) {
	t.rows[i][column] = value
}

// Clone deep-copies the table so the original stays untouched.
func (t *Table) Clone() *Table {
	out := New(t.columns...)
	out.rows = make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		out.rows = append(out.rows, dup)
	}
	return out
}
