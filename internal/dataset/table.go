// Package dataset loads the tabular reference curves the calibration works
// from: the sensor's spectral responsivity export and the CIE tables.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/RyanBlaney/spectral-calibration/internal/spectral"
)

var (
	// ErrUnknownColumn is returned when a requested column is not in the table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrMalformedTable reports a file that does not parse as a numeric table.
	ErrMalformedTable = errors.New("malformed table")
)

// Layout describes how a file's columns are named. Headered files carry the
// names on their first line; positional files get them from Names.
type Layout struct {
	Header bool
	Names  []string
}

// Headered is the layout of files whose first row names the columns.
var Headered = Layout{Header: true}

// Positional returns the layout of a header-less file with the given column
// names.
func Positional(names ...string) Layout {
	return Layout{Names: names}
}

// Table is a column-oriented numeric table.
type Table struct {
	Columns []string
	data    map[string][]float64
	rows    int
}

// Load opens path and reads it as a CSV table.
func Load(path string, layout Layout) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}
	return t, nil
}

// Read parses a CSV table. Blank lines are skipped and cells are trimmed.
// Every data cell must be a finite number.
func Read(r io.Reader, layout Layout) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}

	names := slices.Clone(layout.Names)
	first := 0
	if layout.Header {
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: missing header row", ErrMalformedTable)
		}
		names = make([]string, len(records[0]))
		for i, n := range records[0] {
			names[i] = strings.TrimSpace(n)
		}
		first = 1
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no column names", ErrMalformedTable)
	}

	t := &Table{Columns: names, data: make(map[string][]float64, len(names))}
	for i, rec := range records[first:] {
		line := first + i + 1
		if len(rec) != len(names) {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d",
				ErrMalformedTable, line, len(rec), len(names))
		}
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: line %d column %q: %q is not a finite number",
					ErrMalformedTable, line, names[j], cell)
			}
			t.data[names[j]] = append(t.data[names[j]], v)
		}
		t.rows++
	}
	return t, nil
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return t.rows }

// Has reports whether the table carries a column called name.
func (t *Table) Has(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	if !slices.Contains(t.Columns, name) {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownColumn, name, strings.Join(t.Columns, ", "))
	}
	return slices.Clone(t.data[name]), nil
}

// Curve builds a spectral curve from a wavelength column and a value column.
func (t *Table) Curve(wavelengthCol, valueCol string) (*spectral.Curve, error) {
	ws, err := t.Column(wavelengthCol)
	if err != nil {
		return nil, err
	}
	vs, err := t.Column(valueCol)
	if err != nil {
		return nil, err
	}
	c, err := spectral.NewCurve(ws, vs)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", valueCol, err)
	}
	return c, nil
}

// Curves builds one curve per value column, keyed by column name.
func (t *Table) Curves(wavelengthCol string, valueCols ...string) (map[string]*spectral.Curve, error) {
	out := make(map[string]*spectral.Curve, len(valueCols))
	for _, col := range valueCols {
		c, err := t.Curve(wavelengthCol, col)
		if err != nil {
			return nil, err
		}
		out[col] = c
	}
	return out, nil
}
