package spectral

import (
	"fmt"
	"strconv"
	"strings"
)

// Sample is one cleaned spectral-scan bucket.
type Sample struct {
	Freq    int
	DBM     int
	Graph   string
	Section string
	Dot     int
	Colon   int
}

// CoercionError reports a raw value that is not an integer.
type CoercionError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("row %d: column %q: cannot convert %q to integer: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// Normalize converts the raw table into typed samples, deriving the dot and
// colon counts from each graph.
func Normalize(raw *RawTable) ([]Sample, error) {
	freqs := raw.Column("freq")
	dbms := raw.Column("dbm")
	graphs := raw.Column("graph")
	sections := raw.Column(".section")

	samples := make([]Sample, 0, raw.Len())
	for i := 0; i < raw.Len(); i++ {
		freq, err := toInt("freq", i, cell(freqs, i))
		if err != nil {
			return nil, err
		}
		dbm, err := toInt("dbm", i, cell(dbms, i))
		if err != nil {
			return nil, err
		}

		graph := cell(graphs, i)
		dot, colon := countDotColon(graph)

		samples = append(samples, Sample{
			Freq:    freq,
			DBM:     dbm,
			Graph:   graph,
			Section: cell(sections, i),
			Dot:     dot,
			Colon:   colon,
		})
	}
	return samples, nil
}

// countDotColon tallies '.' and ':' in a spectral-scan graph; every other
// character is ignored.
func countDotColon(graph string) (dot, colon int) {
	for _, c := range graph {
		switch c {
		case '.':
			dot++
		case ':':
			colon++
		}
	}
	return dot, colon
}

// cell returns column[i], "" for a column the table never saw.
func cell(column []string, i int) string {
	if i < 0 || i >= len(column) {
		return ""
	}
	return column[i]
}

func toInt(column string, row int, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &CoercionError{Column: column, Row: row, Value: v, Err: err}
	}
	return n, nil
}
