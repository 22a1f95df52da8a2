// Package analysis computes rankings, per-country profiles and
// compatibility scores over a normalized dataset. All functions are pure.
package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
)

// MeasureMean is one measure's average across entities.
type MeasureMean struct {
	Measure    string
	Mean       float64
	Percentage float64
	// Count is the number of present values the mean was taken over.
	Count int
}

// RankMeasures averages every measure over its present values and returns
// them highest first. Measures with no present value are left out. topK <= 0
// or topK beyond the number of measures returns every ranked measure.
func RankMeasures(ds *dataset.Dataset, topK int) []MeasureMean {
	out := make([]MeasureMean, 0, len(ds.MeasureColumns()))
	for _, m := range ds.MeasureColumns() {
		col, _ := ds.Column(m)
		vals := presentValues(col)
		if len(vals) == 0 {
			continue
		}
		mean, err := stats.Mean(vals)
		if err != nil {
			continue
		}
		out = append(out, MeasureMean{Measure: m, Mean: mean, Percentage: mean * 100, Count: len(vals)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	if topK > 0 && topK < len(out) {
		out = out[:topK]
	}
	return out
}

func presentValues(col []dataset.Value) stats.Float64Data {
	vals := make(stats.Float64Data, 0, len(col))
	for _, v := range col {
		if v.Present {
			vals = append(vals, v.V)
		}
	}
	return vals
}
