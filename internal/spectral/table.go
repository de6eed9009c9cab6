// Package spectral turns RouterOS spectral-scan replies into a ranked 5 GHz
// scan list. Each stage materializes its full output before the next runs.
package spectral

import "sort"

// RawTable accumulates scan rows column by column. Every column holds exactly
// Len() values; a field missing from a row is stored as "".
type RawTable struct {
	columns []string // first-seen order, ties within a row sorted by name
	values  map[string][]string
	rows    int
}

// NewRawTable returns an empty table.
func NewRawTable() *RawTable {
	return &RawTable{values: make(map[string][]string)}
}

// Append adds one row. Fields not seen before become new columns, backfilled
// with "" for earlier rows.
func (t *RawTable) Append(row map[string]string) {
	var fresh []string
	for k := range row {
		if _, ok := t.values[k]; !ok {
			fresh = append(fresh, k)
		}
	}
	sort.Strings(fresh)
	for _, k := range fresh {
		t.columns = append(t.columns, k)
		t.values[k] = make([]string, t.rows, t.rows+1)
	}

	for _, k := range t.columns {
		t.values[k] = append(t.values[k], row[k])
	}
	t.rows++
}

// Len returns the number of rows.
func (t *RawTable) Len() int {
	return t.rows
}

// Column returns the values of name, or nil when the column does not exist.
func (t *RawTable) Column(name string) []string {
	return t.values[name]
}
