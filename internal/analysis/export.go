package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ScoreColumn is the header of the score column in compatibility exports.
const ScoreColumn = "Score(%)"

// formatFloat uses the shortest representation that parses back exactly.
func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// WriteCompatibilityCSV writes the full ranking as UTF-8 CSV: entity key
// column first, score second. The output normalizes back to the same keys
// and scores.
func WriteCompatibilityCSV(w io.Writer, r CompatibilityRanking) error {
	rows := make([][]string, 0, len(r.Scores)+1)
	rows = append(rows, []string{r.EntityKeyColumn, ScoreColumn})
	for _, s := range r.Scores {
		rows = append(rows, []string{s.Entity, formatFloat(s.Score)})
	}
	return writeAll(w, rows)
}

// WriteRankedCSV writes a measure ranking.
func WriteRankedCSV(w io.Writer, ranked []MeasureMean) error {
	rows := [][]string{{"MBTI", "Average", "Percentage"}}
	for _, m := range ranked {
		rows = append(rows, []string{m.Measure, formatFloat(m.Mean), formatFloat(m.Percentage)})
	}
	return writeAll(w, rows)
}

// WriteProfileCSV writes one entity's distribution.
func WriteProfileCSV(w io.Writer, p EntityProfile) error {
	rows := [][]string{{"MBTI", "Value", "Percentage"}}
	for _, e := range p.Entries {
		rows = append(rows, []string{e.Measure, formatFloat(e.Value), formatFloat(e.Percentage)})
	}
	return writeAll(w, rows)
}

// WriteSeriesCSV writes one measure across entities under the entity key
// column and measure names, so it normalizes back into a one-measure dataset.
func WriteSeriesCSV(w io.Writer, keyColumn, measure string, series []EntityValue) error {
	rows := [][]string{{keyColumn, measure}}
	for _, e := range series {
		rows = append(rows, []string{e.Entity, formatFloat(e.Value)})
	}
	return writeAll(w, rows)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
