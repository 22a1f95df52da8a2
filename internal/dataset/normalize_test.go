package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workcalmkite-hue/2025mbti/internal/source"
)

func csvSource(lines ...string) source.Source {
	return source.Bytes("mbti.csv", []byte(strings.Join(lines, "\n")+"\n"))
}

func TestNormalizeTrimsAndResolvesKey(t *testing.T) {
	ds, err := Normalize(csvSource(
		" INFP , COUNTRY ,ISFP ",
		"0.25,South Korea,0.15",
		"0.10,France,0.30",
	), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "mbti.csv", ds.Name())
	assert.Equal(t, "COUNTRY", ds.EntityKeyColumn())
	assert.Equal(t, []string{"INFP", "ISFP"}, ds.MeasureColumns())
	assert.Equal(t, []string{"South Korea", "France"}, ds.Entities())

	row, ok := ds.Row("South Korea")
	require.True(t, ok)
	assert.Equal(t, []Value{Present(0.25), Present(0.15)}, row.Values)
}

func TestNormalizeMissingCells(t *testing.T) {
	ds, err := Normalize(csvSource(
		"Country,INFP,ISFP,ENTJ",
		"A,0.2,n/a,",
		"B,,0.3,NaN",
		"C,0.6",
	), DefaultOptions())
	require.NoError(t, err)

	col, ok := ds.Column("INFP")
	require.True(t, ok)
	assert.Equal(t, []Value{Present(0.2), Missing, Present(0.6)}, col)

	c, _ := ds.Row("C")
	assert.Equal(t, []Value{Present(0.6), Missing, Missing}, c.Values)
	b, _ := ds.Row("B")
	assert.False(t, b.Values[2].Present, "NaN must be missing")
}

func TestNormalizeSchemaErrors(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
	}{
		{"no key", []string{"Nation,INFP", "A,0.1"}},
		{"no measures", []string{"country", "A"}},
		{"ambiguous key", []string{"Country,country,INFP", "A,B,0.1"}},
		{"duplicate after trim", []string{"Country,INFP, INFP", "A,0.1,0.2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(csvSource(tc.lines...), DefaultOptions())
			require.ErrorIs(t, err, ErrSchema)
			assert.NotErrorIs(t, err, ErrParse)
		})
	}
}

func TestNormalizeParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  source.Source
	}{
		{"empty", source.Bytes("empty.csv", nil)},
		{"invalid utf8", source.Bytes("bad.csv", []byte{'C', 'o', 0xff, '\n'})},
		{"row longer than header", csvSource("Country,INFP", "A,0.1,0.2")},
		{"broken quote", csvSource("Country,INFP", `"A,0.1`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.src, DefaultOptions())
			require.ErrorIs(t, err, ErrParse)
			assert.Contains(t, err.Error(), tc.src.Name)
		})
	}
}

func TestNormalizeSkipsBlankEntityRows(t *testing.T) {
	ds, err := Normalize(csvSource(
		"Country,INFP",
		"A,0.1",
		" ,0.2",
		",",
		"B,0.3",
	), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	require.Len(t, ds.Warnings(), 1)
	assert.Contains(t, ds.Warnings()[0], "line 3")
}

func TestNormalizeStrictRange(t *testing.T) {
	src := csvSource("Country,INFP", "A,1.5")

	ds, err := Normalize(src, DefaultOptions())
	require.NoError(t, err)
	row, _ := ds.Row("A")
	assert.Equal(t, 1.5, row.Values[0].V)

	_, err = Normalize(src, Options{StrictRange: true})
	require.ErrorIs(t, err, ErrSchema)
}

func TestDatasetAccessorsReturnCopies(t *testing.T) {
	ds, err := Normalize(csvSource("Country,INFP", "A,0.1"), DefaultOptions())
	require.NoError(t, err)

	ms := ds.MeasureColumns()
	ms[0] = "X"
	rows := ds.Rows()
	rows[0].Values[0] = Present(9)

	assert.Equal(t, []string{"INFP"}, ds.MeasureColumns())
	row, _ := ds.Row("A")
	assert.Equal(t, 0.1, row.Values[0].V)
	assert.Len(t, ds.Head(10), 1)
	assert.Empty(t, ds.Head(-1))
}
