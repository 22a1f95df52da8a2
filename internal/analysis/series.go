package analysis

import (
	"fmt"
	"sort"

	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
)

// EntityValue is one entity's value for a single measure.
type EntityValue struct {
	Entity     string
	Value      float64
	Percentage float64
}

// MeasureSeries lists each entity's value for measure, highest first,
// skipping entities where it is missing. This is the data behind a
// per-country map of one type.
func MeasureSeries(ds *dataset.Dataset, measure string) ([]EntityValue, error) {
	j, ok := ds.MeasureIndex(measure)
	if !ok {
		return nil, fmt.Errorf("%w: unknown measure %q", ErrInvalidSelection, measure)
	}
	var out []EntityValue
	for _, r := range ds.Rows() {
		v := r.Values[j]
		if !v.Present {
			continue
		}
		out = append(out, EntityValue{Entity: r.Entity, Value: v.V, Percentage: v.V * 100})
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].Value > out[k].Value })
	return out, nil
}
