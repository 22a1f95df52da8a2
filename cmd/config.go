package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/workcalmkite-hue/2025mbti/internal/config"
	"github.com/workcalmkite-hue/2025mbti/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set mbti configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "preferred_file: %s\n", c.PreferredFile)
		fmt.Fprintf(w, "search_dirs: %s\n", strings.Join(c.SearchDirs, ","))
		fmt.Fprintf(w, "extensions: %s\n", strings.Join(c.Extensions, ","))
		fmt.Fprintf(w, "recursive: %t\n", c.Recursive)
		if c.Delimiter != "" {
			fmt.Fprintf(w, "delimiter: %q\n", c.Delimiter)
		}
		if c.Sheet != "" {
			fmt.Fprintf(w, "sheet: %s\n", c.Sheet)
		}
		fmt.Fprintf(w, "strict_range: %t\n", c.StrictRange)
		fmt.Fprintf(w, "top_k: %d\n", c.TopK)
		fmt.Fprintf(w, "suggest_n: %d\n", c.SuggestN)
		fmt.Fprintf(w, "match_top: %d\n", c.MatchTop)
		fmt.Fprintf(w, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		switch key {
		case "preferred_file":
			c.PreferredFile = val
		case "search_dirs":
			c.SearchDirs = splitList(val)
		case "extensions":
			exts := splitList(val)
			if len(exts) == 0 {
				return fmt.Errorf("extensions must not be empty")
			}
			c.Extensions = exts
		case "recursive":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for recursive: %v", val)
			}
			c.Recursive = b
		case "delimiter":
			probe := cfgpkg.Global{Delimiter: val}
			if _, err := probe.DelimiterRune(); err != nil {
				return err
			}
			c.Delimiter = val
		case "sheet":
			c.Sheet = val
		case "strict_range":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for strict_range: %v", val)
			}
			c.StrictRange = b
		case "top_k", "suggest_n", "match_top":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			switch key {
			case "top_k":
				c.TopK = i
			case "suggest_n":
				c.SuggestN = i
			default:
				c.MatchTop = i
			}
		case "log_level":
			if err := logging.SetLevelString(val); err != nil {
				return err
			}
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList splits a comma-separated flag or config value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
