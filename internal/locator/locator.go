// Package locator finds the dataset file to load when the user has not
// supplied one explicitly.
package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/workcalmkite-hue/2025mbti/internal/source"
	"github.com/workcalmkite-hue/2025mbti/internal/utils"
)

// ErrNotFound means no candidate file exists in any search directory.
// Callers recover by asking for an explicit file.
var ErrNotFound = errors.New("no dataset file found")

// rootSearchDepth bounds the walk up from the working directory.
const rootSearchDepth = 3

// Options controls the search.
type Options struct {
	// Dirs are searched in priority order. Dirs[0] is the only directory
	// consulted for Preferred.
	Dirs []string
	// Preferred is a file name returned immediately when present in Dirs[0].
	Preferred string
	// Extensions lists accepted file extensions including the dot.
	Extensions []string
	// Recursive descends into subdirectories (hidden ones are skipped).
	Recursive bool
}

// Candidate is one file considered by the search.
type Candidate struct {
	Path    string
	ModTime time.Time
}

// DefaultDirs returns the conventional search list for a working directory:
// the directory itself, the project root, and the root's data/ and pages/.
func DefaultDirs(cwd string) []string {
	dirs := []string{cwd}
	root, err := utils.FindProjectRoot(cwd, rootSearchDepth)
	if err != nil {
		root = cwd
	}
	dirs = append(dirs, root, filepath.Join(root, "data"), filepath.Join(root, "pages"))
	return dirs
}

// Locate returns the preferred file when it exists in the first directory,
// otherwise the most recently modified candidate.
func Locate(opt Options) (source.Source, error) {
	if p, ok := preferred(opt); ok {
		return source.File(p)
	}
	cands, err := Candidates(opt)
	if err != nil {
		return source.Source{}, err
	}
	if len(cands) == 0 {
		return source.Source{}, fmt.Errorf("%w in %s", ErrNotFound, strings.Join(opt.Dirs, ", "))
	}
	return source.File(cands[0].Path)
}

// Candidates lists every matching file, deduplicated by resolved absolute
// path, newest first. Equal modification times are ordered by path.
func Candidates(opt Options) ([]Candidate, error) {
	seen := map[string]struct{}{}
	var out []Candidate
	add := func(path string, info fs.FileInfo) {
		abs, err := resolve(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		out = append(out, Candidate{Path: abs, ModTime: info.ModTime()})
	}
	for _, dir := range opt.Dirs {
		if dir == "" {
			continue
		}
		st, err := os.Stat(dir)
		if err != nil || !st.IsDir() {
			continue
		}
		if opt.Recursive {
			err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					// unreadable subtrees are skipped, not fatal
					if d != nil && d.IsDir() && path != dir {
						return fs.SkipDir
					}
					return nil
				}
				if d.IsDir() {
					if path != dir && strings.HasPrefix(d.Name(), ".") {
						return fs.SkipDir
					}
					return nil
				}
				if !matches(d.Name(), opt.Extensions) {
					return nil
				}
				if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
					add(path, info)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", dir, err)
			}
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !matches(e.Name(), opt.Extensions) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				add(path, info)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].Path < out[j].Path
		}
		return out[i].ModTime.After(out[j].ModTime)
	})
	return out, nil
}

func preferred(opt Options) (string, bool) {
	if opt.Preferred == "" || len(opt.Dirs) == 0 {
		return "", false
	}
	p := filepath.Join(opt.Dirs[0], opt.Preferred)
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return p, true
}

func matches(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		return r, nil
	}
	return abs, nil
}
