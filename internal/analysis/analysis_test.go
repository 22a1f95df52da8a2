package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
)

var (
	p = dataset.Present
	x = dataset.Missing
)

func mustDataset(t *testing.T, measures []string, rows ...dataset.Row) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("test.csv", "Country", measures, rows)
	require.NoError(t, err)
	return ds
}

func row(entity string, vals ...dataset.Value) dataset.Row {
	return dataset.Row{Entity: entity, Values: vals}
}

// koreaFrance is the two-country end-to-end fixture.
func koreaFrance(t *testing.T) *dataset.Dataset {
	return mustDataset(t, []string{"INFP", "ISFP"},
		row("South Korea", p(0.25), p(0.15)),
		row("France", p(0.10), p(0.30)),
	)
}

func TestEndToEndScenario(t *testing.T) {
	ds := koreaFrance(t)

	top := RankMeasures(ds, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "INFP", top[0].Measure)
	assert.InDelta(t, 0.175, top[0].Mean, 1e-12)
	assert.InDelta(t, 17.5, top[0].Percentage, 1e-9)

	prof, err := ProfileEntity(ds, "South Korea")
	require.NoError(t, err)
	require.Len(t, prof.Entries, 2)
	assert.Equal(t, "INFP", prof.Entries[0].Measure)
	assert.InDelta(t, 25.0, prof.Entries[0].Percentage, 1e-9)
	assert.Equal(t, "ISFP", prof.Entries[1].Measure)
	assert.InDelta(t, 15.0, prof.Entries[1].Percentage, 1e-9)

	rank, err := RankCompatibility(ds, []string{"ISFP"})
	require.NoError(t, err)
	require.Len(t, rank.Scores, 2)
	assert.Equal(t, "France", rank.Scores[0].Entity)
	assert.InDelta(t, 30.0, rank.Scores[0].Score, 1e-9)
	assert.Equal(t, "South Korea", rank.Scores[1].Entity)
	assert.InDelta(t, 15.0, rank.Scores[1].Score, 1e-9)

	_, err = ProfileEntity(ds, "Atlantis")
	require.ErrorIs(t, err, ErrEntityNotFound)
}

func TestRankMeasuresExcludesMissing(t *testing.T) {
	ds := mustDataset(t, []string{"X", "EMPTY", "Y"},
		row("A", p(0.2), x, p(0.1)),
		row("B", x, x, p(0.1)),
		row("C", p(0.6), x, p(0.1)),
	)
	got := RankMeasures(ds, 0)
	require.Len(t, got, 2, "a measure with no present values is dropped")
	assert.Equal(t, "X", got[0].Measure)
	assert.InDelta(t, 0.4, got[0].Mean, 1e-12)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "Y", got[1].Measure)

	assert.Len(t, RankMeasures(ds, 10), 2, "topK beyond measure count is not an error")
}

func TestRankMeasuresStableTies(t *testing.T) {
	ds := mustDataset(t, []string{"B", "A", "C"}, row("Z", p(0.1), p(0.1), p(0.2)))
	got := RankMeasures(ds, 0)
	assert.Equal(t, []string{"C", "B", "A"}, []string{got[0].Measure, got[1].Measure, got[2].Measure})
}

func TestProfileSkipsMissingAndSorts(t *testing.T) {
	ds := mustDataset(t, []string{"INFP", "ISFP", "ENTJ"}, row("Korea", p(0.2), x, p(0.5)))
	prof, err := ProfileEntity(ds, "Korea")
	require.NoError(t, err)
	require.Len(t, prof.Entries, 2)

	asc := prof.Sorted(true)
	assert.Equal(t, "INFP", asc.Entries[0].Measure)
	desc := prof.Sorted(false)
	assert.Equal(t, "ENTJ", desc.Entries[0].Measure)
	assert.Equal(t, "INFP", prof.Entries[0].Measure, "Sorted must not reorder the receiver")

	_, err = ProfileEntity(ds, "korea")
	require.ErrorIs(t, err, ErrEntityNotFound, "entity match is case-sensitive")
}

func TestRankCompatibilityMissingCountsAsZero(t *testing.T) {
	ds := mustDataset(t, []string{"X", "Y"},
		row("A", x, p(0.3)),
		row("B", p(0.1), p(0.1)),
		row("C", x, x),
	)
	rank, err := RankCompatibility(ds, []string{"X", "Y"})
	require.NoError(t, err)
	require.Len(t, rank.Scores, 3)
	assert.Equal(t, "A", rank.Scores[0].Entity)
	assert.InDelta(t, 30.0, rank.Scores[0].Score, 1e-9)
	assert.Equal(t, "C", rank.Scores[2].Entity)
	assert.Equal(t, 0.0, rank.Scores[2].Score)
	assert.Equal(t, "Country", rank.EntityKeyColumn)

	assert.Len(t, rank.Top(2), 2)
	assert.Len(t, rank.Top(0), 3)
}

func TestRankCompatibilityInvalidSelection(t *testing.T) {
	ds := koreaFrance(t)
	for _, sel := range [][]string{nil, {}, {"ENTJ"}, {"INFP", "INFP"}} {
		_, err := RankCompatibility(ds, sel)
		require.ErrorIs(t, err, ErrInvalidSelection, "selection %v", sel)
	}
}

func TestSuggestCompatibleMeasures(t *testing.T) {
	ds := mustDataset(t, []string{"A", "UP", "DOWN", "FLAT", "SPARSE", "PARTIAL"},
		row("r1", p(0.1), p(0.2), p(0.9), p(0.5), p(0.3), p(0.1)),
		row("r2", p(0.2), p(0.4), p(0.8), p(0.5), x, p(0.5)),
		row("r3", p(0.3), p(0.6), p(0.7), p(0.5), x, p(0.3)),
		row("r4", x, p(0.1), p(0.1), p(0.5), x, p(0.9)),
	)
	corr, err := CorrelateWith(ds, "A")
	require.NoError(t, err)
	require.Len(t, corr, 3, "FLAT (zero variance) and SPARSE (<2 rows) are excluded")
	assert.Equal(t, "UP", corr[0].Measure)
	assert.InDelta(t, 1.0, corr[0].R, 1e-9)
	assert.Equal(t, 3, corr[0].N, "row missing the anchor is excluded")
	assert.Equal(t, "PARTIAL", corr[1].Measure)
	assert.InDelta(t, 0.5, corr[1].R, 1e-9)
	assert.Equal(t, 3, corr[1].N)
	assert.Equal(t, "DOWN", corr[2].Measure)
	assert.InDelta(t, -1.0, corr[2].R, 1e-9)

	names, err := SuggestCompatibleMeasures(ds, "A", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"UP", "PARTIAL"}, names)

	all, err := SuggestCompatibleMeasures(ds, "A", 0)
	require.NoError(t, err)
	assert.NotContains(t, all, "A")
	assert.Len(t, all, 3)

	_, err = SuggestCompatibleMeasures(ds, "ZZZZ", 4)
	require.ErrorIs(t, err, ErrInvalidSelection)
}

func TestMeasureSeries(t *testing.T) {
	ds := mustDataset(t, []string{"INFP"},
		row("A", p(0.1)),
		row("B", x),
		row("C", p(0.4)),
	)
	s, err := MeasureSeries(ds, "INFP")
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, "C", s[0].Entity)
	assert.InDelta(t, 40.0, s[0].Percentage, 1e-9)

	_, err = MeasureSeries(ds, "ISFP")
	require.ErrorIs(t, err, ErrInvalidSelection)
}
