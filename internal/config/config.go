package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user configuration directory under $HOME.
const DirName = ".mbti"

// Global configuration structure.
type Global struct {
	// Dataset discovery
	PreferredFile string   `mapstructure:"preferred_file" yaml:"preferred_file"`
	SearchDirs    []string `mapstructure:"search_dirs" yaml:"search_dirs"`
	Extensions    []string `mapstructure:"extensions" yaml:"extensions"`
	Recursive     bool     `mapstructure:"recursive" yaml:"recursive"`

	// Parsing
	Delimiter   string `mapstructure:"delimiter" yaml:"delimiter"`
	Sheet       string `mapstructure:"sheet" yaml:"sheet"`
	StrictRange bool   `mapstructure:"strict_range" yaml:"strict_range"`

	// Aggregation defaults
	TopK     int `mapstructure:"top_k" yaml:"top_k"`
	SuggestN int `mapstructure:"suggest_n" yaml:"suggest_n"`
	MatchTop int `mapstructure:"match_top" yaml:"match_top"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DelimiterRune resolves the configured delimiter. Empty means sniff.
// "tab" and "\t" both select a tab.
func (c *Global) DelimiterRune() (rune, error) {
	d := c.Delimiter
	switch strings.ToLower(d) {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q: want a single character", d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", d)
	}
	return r, nil
}

// Dir returns ~/.mbti.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.mbti/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory is read first and never overrides variables already set.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MBTI")
	v.AutomaticEnv()

	v.SetDefault("preferred_file", "countriesMBTI_16types.csv")
	v.SetDefault("search_dirs", []string{})
	v.SetDefault("extensions", []string{".csv", ".tsv", ".xlsx"})
	v.SetDefault("recursive", true)
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet", "")
	v.SetDefault("strict_range", false)
	v.SetDefault("top_k", 10)
	v.SetDefault("suggest_n", 4)
	v.SetDefault("match_top", 10)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Extensions = normalizeExtensions(c.Extensions)
	if _, err := c.DelimiterRune(); err != nil {
		return nil, err
	}
	return &c, nil
}

// normalizeExtensions lowercases entries and adds the leading dot.
func normalizeExtensions(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}
