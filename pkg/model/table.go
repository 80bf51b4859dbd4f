// pkg/model/table.go
package model

import "strings"

// Row maps a column name to the cell value for one record.
// Cell values are plain strings; blank means the cell was empty.
type Row map[string]string

// Table is an ordered, immutable-by-convention view of one spreadsheet tab.
// Transformations never mutate a Table in place; they produce a new one.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column order
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: []Row{}}
}

// IsEmpty reports whether the table has no rows
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// AppendRow adds a row to the table
func (t *Table) AppendRow(row Row) {
	t.Rows = append(t.Rows, row)
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns)
	for _, row := range t.Rows {
		copied := make(Row, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out.AppendRow(copied)
	}
	return out
}

// Get returns the trimmed value of a cell, or "" when the column is absent
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// NonBlankCount counts rows holding a non-blank value in the given column
func (t *Table) NonBlankCount(column string) int {
	count := 0
	for _, row := range t.Rows {
		if row.Get(column) != "" {
			count++
		}
	}
	return count
}

// ColumnUnion returns the columns of all tables in order of first appearance
func ColumnUnion(tables ...*Table) []string {
	seen := make(map[string]bool)
	union := []string{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, col := range t.Columns {
			if !seen[col] {
				seen[col] = true
				union = append(union, col)
			}
		}
	}
	return union
}

// NormalizeKey canonicalizes a participant card code for joining: trims
// surrounding whitespace and strips the trailing ".0" float artifact that
// spreadsheet exports attach to numeric cells.
func NormalizeKey(raw string) string {
	key := strings.TrimSpace(raw)
	key = strings.TrimSuffix(key, ".0")
	return key
}
