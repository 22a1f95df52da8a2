package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/workcalmkite-hue/2025mbti/internal/analysis"
	"github.com/workcalmkite-hue/2025mbti/internal/logging"
)

var (
	matchPartners []string
	matchSuggest  int
	matchTop      int
	matchOutput   string
)

var trophies = []string{"🥇", "🥈", "🥉"}

var matchCmd = &cobra.Command{
	Use:   "match <type>",
	Short: "Rank countries by the combined share of types compatible with yours",
	Long: `match suggests partner types whose per-country shares move most closely
with <type> (Pearson correlation), then ranks every country by the summed
share of the partner types. Use --partners to choose them yourself.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		user := args[0]
		n := matchSuggest
		if !cmd.Flags().Changed("suggest") {
			n = cfg.SuggestN
		}
		top := matchTop
		if !cmd.Flags().Changed("top") {
			top = cfg.MatchTop
		}

		suggested, err := analysis.SuggestCompatibleMeasures(ds, user, n)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(suggested) > 0 {
			fmt.Fprintf(w, "Suggested partners for %s: %s\n", user, strings.Join(suggested, ", "))
		} else {
			printWarn(w, "no correlated partner types for %s", user)
		}

		partners := suggested
		if cmd.Flags().Changed("partners") {
			partners = nil
			for _, p := range matchPartners {
				partners = append(partners, splitList(p)...)
			}
		}
		if len(partners) == 0 {
			return fmt.Errorf("%w: no partner types selected; pass --partners", analysis.ErrInvalidSelection)
		}
		ranking, err := analysis.RankCompatibility(ds, partners)
		if err != nil {
			return err
		}
		logger().Debug(cmd.Context(), "compatibility ranked",
			logging.String("type", user),
			logging.Any("partners", partners),
			logging.Int("entities", len(ranking.Scores)))

		printHeading(w, "Podium")
		for i, s := range ranking.Top(len(trophies)) {
			fmt.Fprintf(w, "%s %s  %s\n", trophies[i], s.Entity, pct(s.Score))
		}

		shown := ranking.Top(top)
		printHeading(w, "Top %d by %s", len(shown), strings.Join(partners, " + "))
		rows := make([][]string, 0, len(shown))
		for i, s := range shown {
			rows = append(rows, []string{ordinal(i), s.Entity, pct(s.Score)})
		}
		renderTable(w, []string{"Rank", ranking.EntityKeyColumn, analysis.ScoreColumn}, rows)

		return writeExport(cmd, matchOutput, "mbti_match_rank_"+user+".csv", func(out io.Writer) error {
			return analysis.WriteCompatibilityCSV(out, ranking)
		})
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringSliceVar(&matchPartners, "partners", nil, "partner types to score (comma-separated); defaults to the suggestions")
	matchCmd.Flags().IntVar(&matchSuggest, "suggest", 4, "number of partner types to suggest (0 = all)")
	matchCmd.Flags().IntVar(&matchTop, "top", 10, "number of countries to show (0 = all); the export always has every country")
	matchCmd.Flags().StringVarP(&matchOutput, "output", "o", "", "write the full ranking as CSV to this file or directory")
}
