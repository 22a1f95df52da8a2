package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workcalmkite-hue/2025mbti/internal/locator"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Show the search directories, candidate files, and the file that would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if dataFile != "" {
			src, err := resolveSource(c)
			if err != nil {
				return err
			}
			printOK(w, "Using: %s (from --file)", src.Path)
			return nil
		}
		opt, err := locatorOptions(c)
		if err != nil {
			return err
		}
		printHeading(w, "Search directories")
		for _, d := range opt.Dirs {
			fmt.Fprintf(w, "- %s\n", d)
		}
		cands, err := locator.Candidates(opt)
		if err != nil {
			return err
		}
		if len(cands) > 0 {
			printHeading(w, "Candidates (newest first)")
			rows := make([][]string, 0, len(cands))
			for _, cd := range cands {
				rows = append(rows, []string{cd.Path, cd.ModTime.Format("2006-01-02 15:04:05")})
			}
			renderTable(w, []string{"Path", "Modified"}, rows)
		}
		src, err := locator.Locate(opt)
		if err != nil {
			return err
		}
		printOK(w, "Using: %s", src.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
