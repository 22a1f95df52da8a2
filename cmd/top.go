package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/workcalmkite-hue/2025mbti/internal/analysis"
)

var (
	topK      int
	topOutput string
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank MBTI types by their average share across countries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		k := topK
		if !cmd.Flags().Changed("k") {
			k = cfg.TopK
		}
		ranked := analysis.RankMeasures(ds, k)

		w := cmd.OutOrStdout()
		printHeading(w, "Top %d MBTI types (global average)", len(ranked))
		rows := make([][]string, 0, len(ranked))
		for i, m := range ranked {
			rows = append(rows, []string{ordinal(i), m.Measure, num(m.Mean), pct(m.Percentage)})
		}
		renderTable(w, []string{"Rank", "MBTI", "Average", "Percentage"}, rows)

		return writeExport(cmd, topOutput, "mbti_top.csv", func(out io.Writer) error {
			return analysis.WriteRankedCSV(out, ranked)
		})
	},
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries in the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, e := range ds.Entities() {
			if _, err := io.WriteString(w, e+"\n"); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(countriesCmd)
	topCmd.Flags().IntVar(&topK, "k", 10, "number of types to show (0 = all)")
	topCmd.Flags().StringVarP(&topOutput, "output", "o", "", "write the ranking as CSV to this file or directory")
}
