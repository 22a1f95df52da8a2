package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
)

// MeasureCorrelation is the Pearson r between an anchor measure and Measure,
// taken over the N rows where both are present.
type MeasureCorrelation struct {
	Measure string
	R       float64
	N       int
}

// CorrelateWith correlates anchor with every other measure using
// pairwise-complete rows, strongest positive first. Pairs with fewer than two
// shared rows or zero variance have no defined r and are left out.
func CorrelateWith(ds *dataset.Dataset, anchor string) ([]MeasureCorrelation, error) {
	a, ok := ds.Column(anchor)
	if !ok {
		return nil, fmt.Errorf("%w: unknown measure %q", ErrInvalidSelection, anchor)
	}
	var out []MeasureCorrelation
	for _, m := range ds.MeasureColumns() {
		if m == anchor {
			continue
		}
		b, _ := ds.Column(m)
		x, y := pairwiseComplete(a, b)
		r, ok := pearson(x, y)
		if !ok {
			continue
		}
		out = append(out, MeasureCorrelation{Measure: m, R: r, N: len(x)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].R > out[j].R })
	return out, nil
}

// SuggestCompatibleMeasures returns the topN measures that move most closely
// with anchor across entities. It is a default for RankCompatibility, not a
// requirement. topN <= 0 returns every correlated measure.
func SuggestCompatibleMeasures(ds *dataset.Dataset, anchor string, topN int) ([]string, error) {
	corr, err := CorrelateWith(ds, anchor)
	if err != nil {
		return nil, err
	}
	if topN > 0 && topN < len(corr) {
		corr = corr[:topN]
	}
	names := make([]string, len(corr))
	for i, c := range corr {
		names[i] = c.Measure
	}
	return names, nil
}

func pairwiseComplete(a, b []dataset.Value) (x, y []float64) {
	for i := range a {
		if a[i].Present && b[i].Present {
			x = append(x, a[i].V)
			y = append(y, b[i].V)
		}
	}
	return x, y
}

func pearson(x, y []float64) (float64, bool) {
	if len(x) < 2 {
		return 0, false
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0, false
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}
