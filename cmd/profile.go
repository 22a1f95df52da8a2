package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/workcalmkite-hue/2025mbti/internal/analysis"
)

var (
	profileOrder  string
	profileOutput string
)

var profileCmd = &cobra.Command{
	Use:   "profile <country>",
	Short: "Show one country's MBTI distribution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var asc bool
		switch strings.ToLower(profileOrder) {
		case "asc":
			asc = true
		case "desc":
		default:
			return fmt.Errorf("invalid --order %q (use asc or desc)", profileOrder)
		}
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		prof, err := analysis.ProfileEntity(ds, args[0])
		if err != nil {
			return err
		}
		prof = prof.Sorted(asc)

		w := cmd.OutOrStdout()
		printHeading(w, "MBTI distribution for %s", prof.Entity)
		rows := make([][]string, 0, len(prof.Entries))
		for _, e := range prof.Entries {
			rows = append(rows, []string{e.Measure, num(e.Value), pct(e.Percentage)})
		}
		renderTable(w, []string{"MBTI", "Value", "Percentage"}, rows)

		return writeExport(cmd, profileOutput, "mbti_profile_"+fileSafe(prof.Entity)+".csv", func(out io.Writer) error {
			return analysis.WriteProfileCSV(out, prof)
		})
	},
}

var mapOutput string

var mapCmd = &cobra.Command{
	Use:   "map <type>",
	Short: "Show one MBTI type's share in every country (map data)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		measure := args[0]
		series, err := analysis.MeasureSeries(ds, measure)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		printHeading(w, "%s share by %s", measure, ds.EntityKeyColumn())
		rows := make([][]string, 0, len(series))
		for i, e := range series {
			rows = append(rows, []string{ordinal(i), e.Entity, num(e.Value), pct(e.Percentage)})
		}
		renderTable(w, []string{"Rank", ds.EntityKeyColumn(), "Value", "Percentage"}, rows)

		return writeExport(cmd, mapOutput, "mbti_map_"+measure+".csv", func(out io.Writer) error {
			return analysis.WriteSeriesCSV(out, ds.EntityKeyColumn(), measure, series)
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(mapCmd)
	profileCmd.Flags().StringVar(&profileOrder, "order", "desc", "sort order: asc or desc")
	profileCmd.Flags().StringVarP(&profileOutput, "output", "o", "", "write the profile as CSV to this file or directory")
	mapCmd.Flags().StringVarP(&mapOutput, "output", "o", "", "write the series as CSV to this file or directory")
}

// fileSafe keeps letters and digits and maps everything else to '_'.
func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '_'
	}, s)
}
