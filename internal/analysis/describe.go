package analysis

import (
	"math"
	"sort"

	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
)

// DefaultOutlierThreshold is the robust |z| above which a value counts as an outlier.
const DefaultOutlierThreshold = 3.5

// minOutlierSample is the smallest column worth testing for outliers.
const minOutlierSample = 8

// MeasureSummary captures per-measure statistics over present values.
type MeasureSummary struct {
	Measure string
	Present int
	Missing int
	Min     float64
	Max     float64
	Mean    float64
	Std     float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// OutOfRange counts present values outside [0,1].
	OutOfRange int
}

// Describe summarizes every measure column in column order. threshold <= 0
// uses DefaultOutlierThreshold.
func Describe(ds *dataset.Dataset, threshold float64) []MeasureSummary {
	if threshold <= 0 {
		threshold = DefaultOutlierThreshold
	}
	out := make([]MeasureSummary, 0, len(ds.MeasureColumns()))
	for _, m := range ds.MeasureColumns() {
		col, _ := ds.Column(m)
		s := MeasureSummary{Measure: m, Min: math.Inf(1), Max: math.Inf(-1)}
		var n int
		var mean, m2 float64
		vals := make([]float64, 0, len(col))
		for _, v := range col {
			if !v.Present {
				s.Missing++
				continue
			}
			x := v.V
			if x < 0 || x > 1 {
				s.OutOfRange++
			}
			// Welford update
			n++
			if x < s.Min {
				s.Min = x
			}
			if x > s.Max {
				s.Max = x
			}
			delta := x - mean
			mean += delta / float64(n)
			m2 += delta * (x - mean)
			vals = append(vals, x)
		}
		s.Present = n
		if n == 0 {
			s.Min, s.Max = 0, 0
			out = append(out, s)
			continue
		}
		s.Mean = mean
		if n > 1 {
			s.Std = math.Sqrt(m2 / float64(n-1))
		}
		if n >= minOutlierSample {
			s.OutlierThreshold = threshold
			s.OutliersCount, s.OutliersMaxAbsZ = robustOutliers(vals, threshold)
		}
		out = append(out, s)
	}
	return out
}

func robustOutliers(vals []float64, threshold float64) (count int, maxAbsZ float64) {
	median, mad := medianMAD(vals)
	if mad == 0 {
		return 0, 0
	}
	for _, v := range vals {
		az := math.Abs(0.6745 * (v - median) / mad)
		if az > threshold {
			count++
		}
		if az > maxAbsZ {
			maxAbsZ = az
		}
	}
	return count, maxAbsZ
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
