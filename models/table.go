package models

// Cell is a single table value. Valid is false when the underlying attribute
// was absent or unparsable; consumers must not read Value in that case.
type Cell struct {
	Value string
	Valid bool
}

// Table is the rectangular projection of a result set: one row per listing,
// one column per attribute, in a fixed canonical order. Row order is the
// input record order.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, column name). ok is false when either the
// row or the column does not exist.
func (t *Table) Cell(row int, column string) (Cell, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return Cell{}, false
	}
	return t.Rows[row][idx], true
}
