package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cfgpkg "github.com/workcalmkite-hue/2025mbti/internal/config"
	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
	"github.com/workcalmkite-hue/2025mbti/internal/locator"
	"github.com/workcalmkite-hue/2025mbti/internal/logging"
	"github.com/workcalmkite-hue/2025mbti/internal/parser"
	"github.com/workcalmkite-hue/2025mbti/internal/source"
	"github.com/workcalmkite-hue/2025mbti/internal/utils"
)

// locatorOptions builds the search from flags and config. --dir entries come
// first so the preferred file is looked up in the first of them.
func locatorOptions(c *cfgpkg.Global) (locator.Options, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return locator.Options{}, fmt.Errorf("working directory: %w", err)
	}
	dirs := make([]string, 0, len(searchDirs)+len(c.SearchDirs)+4)
	dirs = append(dirs, searchDirs...)
	dirs = append(dirs, c.SearchDirs...)
	dirs = append(dirs, locator.DefaultDirs(cwd)...)
	exts := c.Extensions
	if len(exts) == 0 {
		exts = parser.Extensions()
	}
	return locator.Options{
		Dirs:       dirs,
		Preferred:  c.PreferredFile,
		Extensions: exts,
		Recursive:  c.Recursive,
	}, nil
}

// resolveSource returns --file when given, otherwise the located dataset.
func resolveSource(c *cfgpkg.Global) (source.Source, error) {
	if dataFile != "" {
		return source.File(dataFile)
	}
	opt, err := locatorOptions(c)
	if err != nil {
		return source.Source{}, err
	}
	return locator.Locate(opt)
}

func normalizeOptions(c *cfgpkg.Global) (dataset.Options, error) {
	d, err := c.DelimiterRune()
	if err != nil {
		return dataset.Options{}, err
	}
	return dataset.Options{Delimiter: d, Sheet: c.Sheet, StrictRange: c.StrictRange}, nil
}

// loadDataset resolves, normalizes, and caches the dataset for a command.
func loadDataset(cmd *cobra.Command) (*dataset.Dataset, error) {
	c, err := currentConfig()
	if err != nil {
		return nil, err
	}
	src, err := resolveSource(c)
	if err != nil {
		return nil, err
	}
	opt, err := normalizeOptions(c)
	if err != nil {
		return nil, err
	}
	ds, err := datasets.Load(src, opt)
	if err != nil {
		return nil, err
	}
	l := logger()
	l.Debug(cmd.Context(), "dataset loaded",
		logging.String("path", src.Path),
		logging.Int("rows", ds.Len()),
		logging.Int("measures", len(ds.MeasureColumns())),
		logging.Float64("cache_hit_rate", datasets.HitRate()))
	for _, w := range ds.Warnings() {
		l.Warn(cmd.Context(), "row skipped", logging.String("file", src.Name), logging.String("detail", w))
	}
	return ds, nil
}

// writeExport writes CSV produced by write to path. A directory path gets
// defaultName appended. An empty path writes nothing.
func writeExport(cmd *cobra.Command, path, defaultName string, write func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, defaultName)
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	logger().Info(cmd.Context(), "exported", logging.String("path", path), logging.Int("bytes", buf.Len()))
	printOK(cmd.OutOrStdout(), "Exported %s", path)
	return nil
}
