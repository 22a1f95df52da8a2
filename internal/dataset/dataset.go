// Package dataset turns a raw tabular source into a validated, typed table
// keyed by country with one numeric column per MBTI type.
package dataset

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Match with errors.Is.
var (
	// ErrParse means the source bytes are not readable tabular text.
	ErrParse = errors.New("parse error")
	// ErrSchema means the table has no usable entity key or measure columns.
	ErrSchema = errors.New("schema error")
)

func schemaError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrSchema}, args...)...)
}

// EntityKeyName is the column name, matched case-insensitively, that holds the entity key.
const EntityKeyName = "country"

// Value is one measure cell. Missing cells failed numeric coercion.
type Value struct {
	V       float64
	Present bool
}

// Missing is the zero Value.
var Missing = Value{}

// Present wraps a parsed number.
func Present(v float64) Value { return Value{V: v, Present: true} }

// Row is one entity with a value for every measure column, in column order.
type Row struct {
	Entity string
	Values []Value
}

// Dataset is immutable after Normalize returns it; accessors hand out copies.
type Dataset struct {
	name     string
	keyCol   string
	measures []string
	index    map[string]int
	rows     []Row
	warnings []string
}

// New builds a Dataset directly. Every row must carry len(measures) values.
func New(name, keyCol string, measures []string, rows []Row) (*Dataset, error) {
	if keyCol == "" {
		return nil, schemaError("missing entity key column")
	}
	if len(measures) == 0 {
		return nil, schemaError("no measure columns")
	}
	ds := &Dataset{
		name:     name,
		keyCol:   keyCol,
		measures: append([]string(nil), measures...),
		index:    make(map[string]int, len(measures)),
		rows:     make([]Row, len(rows)),
	}
	for i, m := range ds.measures {
		if _, dup := ds.index[m]; dup || m == keyCol {
			return nil, schemaError("duplicate column %q", m)
		}
		ds.index[m] = i
	}
	for i, r := range rows {
		if len(r.Values) != len(measures) {
			return nil, schemaError("row %d has %d values for %d measure columns", i+1, len(r.Values), len(measures))
		}
		ds.rows[i] = Row{Entity: r.Entity, Values: append([]Value(nil), r.Values...)}
	}
	return ds, nil
}

// Name is the display name of the source the dataset came from.
func (d *Dataset) Name() string { return d.name }

// EntityKeyColumn is the entity key column name as spelled in the source.
func (d *Dataset) EntityKeyColumn() string { return d.keyCol }

// MeasureColumns returns the measure column names in source order.
func (d *Dataset) MeasureColumns() []string { return append([]string(nil), d.measures...) }

// Warnings lists non-fatal notes collected while normalizing.
func (d *Dataset) Warnings() []string { return append([]string(nil), d.warnings...) }

// Len is the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// HasMeasure reports whether name is a measure column.
func (d *Dataset) HasMeasure(name string) bool {
	_, ok := d.index[name]
	return ok
}

// MeasureIndex returns the position of a measure column.
func (d *Dataset) MeasureIndex(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Rows returns a copy of every row.
func (d *Dataset) Rows() []Row { return d.Head(len(d.rows)) }

// Head returns a copy of the first n rows.
func (d *Dataset) Head(n int) []Row {
	if n > len(d.rows) {
		n = len(d.rows)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Row, n)
	for i := 0; i < n; i++ {
		out[i] = Row{Entity: d.rows[i].Entity, Values: append([]Value(nil), d.rows[i].Values...)}
	}
	return out
}

// Row returns the first row whose entity key equals entity exactly.
func (d *Dataset) Row(entity string) (Row, bool) {
	for _, r := range d.rows {
		if r.Entity == entity {
			return Row{Entity: r.Entity, Values: append([]Value(nil), r.Values...)}, true
		}
	}
	return Row{}, false
}

// Column returns one measure's values in row order.
func (d *Dataset) Column(measure string) ([]Value, bool) {
	j, ok := d.index[measure]
	if !ok {
		return nil, false
	}
	out := make([]Value, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.Values[j]
	}
	return out, true
}

// Entities returns the distinct entity keys in row order. Selection lists
// must be populated from here.
func (d *Dataset) Entities() []string {
	seen := make(map[string]struct{}, len(d.rows))
	out := make([]string, 0, len(d.rows))
	for _, r := range d.rows {
		if _, ok := seen[r.Entity]; ok {
			continue
		}
		seen[r.Entity] = struct{}{}
		out = append(out, r.Entity)
	}
	return out
}
