package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/workcalmkite-hue/2025mbti/internal/analysis"
)

var (
	previewRows     int
	previewDescribe bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the first rows, table shape, per-type summary, and load warnings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if previewRows < 0 {
			return fmt.Errorf("--rows must be >= 0")
		}
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		measures := ds.MeasureColumns()
		fmt.Fprintf(w, "%s: %d rows × %d columns\n", ds.Name(), ds.Len(), len(measures)+1)

		header := append([]string{ds.EntityKeyColumn()}, measures...)
		head := ds.Head(previewRows)
		rows := make([][]string, 0, len(head))
		for _, r := range head {
			line := make([]string, 0, len(header))
			line = append(line, r.Entity)
			for _, v := range r.Values {
				line = append(line, cell(v))
			}
			rows = append(rows, line)
		}
		renderTable(w, header, rows)

		if previewDescribe {
			printHeading(w, "Per-type summary")
			var srows [][]string
			for _, s := range analysis.Describe(ds, 0) {
				outliers := "-"
				if s.OutlierThreshold > 0 {
					outliers = strconv.Itoa(s.OutliersCount)
				}
				srows = append(srows, []string{
					s.Measure,
					strconv.Itoa(s.Present),
					strconv.Itoa(s.Missing),
					num(s.Mean), num(s.Std), num(s.Min), num(s.Max),
					outliers,
					strconv.Itoa(s.OutOfRange),
				})
			}
			renderTable(w, []string{"MBTI", "Present", "Missing", "Mean", "Std", "Min", "Max", "Outliers", "Out of [0,1]"}, srows)
		}

		for _, warn := range ds.Warnings() {
			printWarn(w, "%s", warn)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&previewRows, "rows", 5, "number of rows to show")
	previewCmd.Flags().BoolVar(&previewDescribe, "describe", true, "include the per-type summary")
}
