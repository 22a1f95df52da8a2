package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/workcalmkite-hue/2025mbti/internal/parser"
	"github.com/workcalmkite-hue/2025mbti/internal/source"
)

// Options controls normalization.
type Options struct {
	// Delimiter for delimited text; 0 auto-detects.
	Delimiter rune
	// Sheet selects a workbook sheet; empty means the first.
	Sheet string
	// StrictRange rejects present values outside [0,1]. Off by default.
	StrictRange bool
}

// DefaultOptions returns the lenient defaults.
func DefaultOptions() Options { return Options{} }

func (o Options) fingerprint() string {
	return fmt.Sprintf("d=%q;s=%q;strict=%t", o.Delimiter, o.Sheet, o.StrictRange)
}

// Normalize reads src and returns a validated Dataset.
// Failures wrap ErrParse (unreadable bytes) or ErrSchema (unusable columns).
func Normalize(src source.Source, opt Options) (*Dataset, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, src.Name, err)
	}
	defer rc.Close()

	records, err := parser.ReadRecords(src.Name, rc, parser.Options{Delimiter: opt.Delimiter, Sheet: opt.Sheet})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, src.Name, err)
	}
	return fromRecords(src.Name, records, opt)
}

func fromRecords(name string, records [][]string, opt Options) (*Dataset, error) {
	header := records[0]
	ncol := len(header)
	cols := make([]string, ncol)
	seen := make(map[string]struct{}, ncol)
	keyIdx := -1
	for i, h := range header {
		hn := strings.TrimSpace(h)
		if _, dup := seen[hn]; dup {
			return nil, schemaError("%s: duplicate column %q", name, hn)
		}
		seen[hn] = struct{}{}
		cols[i] = hn
		if strings.EqualFold(hn, EntityKeyName) {
			if keyIdx >= 0 {
				return nil, schemaError("%s: ambiguous entity key: both %q and %q match %q", name, cols[keyIdx], hn, EntityKeyName)
			}
			keyIdx = i
		}
	}
	if keyIdx < 0 {
		return nil, schemaError("%s: missing entity key column %q", name, EntityKeyName)
	}
	measures := make([]string, 0, ncol-1)
	for i, c := range cols {
		if i != keyIdx {
			measures = append(measures, c)
		}
	}
	if len(measures) == 0 {
		return nil, schemaError("%s: no measure columns", name)
	}

	var warnings []string
	rows := make([]Row, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2
		if len(rec) > ncol {
			return nil, fmt.Errorf("%w: %s: line %d has %d fields, header has %d", ErrParse, name, line, len(rec), ncol)
		}
		if blank(rec) {
			continue
		}
		// Normalize length
		if len(rec) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		entity := strings.TrimSpace(rec[keyIdx])
		if entity == "" {
			warnings = append(warnings, fmt.Sprintf("line %d skipped: empty %s", line, cols[keyIdx]))
			continue
		}
		vals := make([]Value, 0, len(measures))
		for j, cell := range rec {
			if j == keyIdx {
				continue
			}
			v := coerce(cell)
			if opt.StrictRange && v.Present && (v.V < 0 || v.V > 1) {
				return nil, schemaError("%s: line %d: %s=%g outside [0,1]", name, line, cols[j], v.V)
			}
			vals = append(vals, v)
		}
		rows = append(rows, Row{Entity: entity, Values: vals})
	}

	ds, err := New(name, cols[keyIdx], measures, rows)
	if err != nil {
		return nil, err
	}
	ds.warnings = warnings
	return ds, nil
}

// coerce parses a cell as a number. Anything unparsable is Missing.
func coerce(s string) Value {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Missing
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing
	}
	return Present(f)
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
