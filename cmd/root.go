package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/workcalmkite-hue/2025mbti/internal/analysis"
	cfgpkg "github.com/workcalmkite-hue/2025mbti/internal/config"
	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
	"github.com/workcalmkite-hue/2025mbti/internal/locator"
	"github.com/workcalmkite-hue/2025mbti/internal/logging"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	dataFile    string
	searchDirs  []string
	strictRange bool

	// Loaded configuration
	cfg *cfgpkg.Global

	// Per-invocation logger carrying run_id
	log logging.Logger

	// Datasets are reused across commands in one process while the file is unchanged.
	datasets = dataset.NewCache()
)

var rootCmd = &cobra.Command{
	Use:   "mbti",
	Short: "Explore MBTI type distributions per country",
	Long: `mbti reads a per-country table of the 16 MBTI type shares, ranks types
globally, profiles single countries, and ranks countries by how well a
group of compatible types is represented.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		if h := hint(err); h != "" {
			fmt.Fprintln(os.Stderr, "  hint:", h)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.mbti/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "dataset file to use instead of searching")
	rootCmd.PersistentFlags().StringSliceVar(&searchDirs, "dir", nil, "extra directories to search first (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&strictRange, "strict-range", false, "reject values outside [0,1]")
}

func loadConfig() {
	log = logging.Named("cli").With(logging.String("run_id", uuid.NewString()))

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to currentConfig and report there
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
	applyOverrides()
}

// applyOverrides copies explicitly set flags over config values.
func applyOverrides() {
	f := rootCmd.PersistentFlags()
	if f.Changed("strict-range") {
		cfg.StrictRange = strictRange
	}
	if err := logging.SetLevelString(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
	}
	if debug {
		_ = logging.SetLevelString("debug")
	}
}

// currentConfig returns the loaded config, loading it now if startup failed.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	applyOverrides()
	return cfg, nil
}

func logger() logging.Logger {
	if log == nil {
		log = logging.Named("cli")
	}
	return log
}

// hint suggests a recovery for the error kinds users can act on.
func hint(err error) string {
	switch {
	case errors.Is(err, locator.ErrNotFound):
		return "pass --file <path> or add a search directory with --dir"
	case errors.Is(err, dataset.ErrSchema):
		return "the table needs a 'Country' column and one numeric column per type"
	case errors.Is(err, dataset.ErrParse):
		return "check the file is UTF-8 CSV/TSV or an .xlsx workbook"
	case errors.Is(err, analysis.ErrEntityNotFound):
		return "run 'mbti countries' to list valid names (matching is case-sensitive)"
	case errors.Is(err, analysis.ErrInvalidSelection):
		return "type names are case-sensitive column names such as INFP"
	}
	return ""
}
