// Package selection turns positional arguments and include/exclude patterns
// into the list of files to transform.
package selection

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/benjaminwoods/mv2/pkg/pathmatch"
)

// Stdin is the argument that selects standard input instead of files.
const Stdin = "-"

// ErrNoMatches is returned when no file survives selection.
var ErrNoMatches = errors.New("no files matched")

// Rules are the include/exclude patterns applied inside directories.
// Excludes win over includes. Without includes every file is a candidate.
type Rules struct {
	Include []string
	Exclude []string
	// HasIncludes requests include filtering even when Include is empty,
	// as with an empty include pattern file. Nothing is then selected.
	HasIncludes bool
}

// filtersIncludes reports whether files must match an include pattern.
func (r Rules) filtersIncludes() bool {
	return r.HasIncludes || len(r.Include) > 0
}

// Result is the outcome of Resolve.
type Result struct {
	// Files selected, in walk order, without duplicates
	Files []string
	// Scanned counts every file seen, selected or not
	Scanned int
}

// Excluded is the number of scanned files that were not selected.
func (r Result) Excluded() int {
	return r.Scanned - len(r.Files)
}

// Resolve expands args into files. Explicit files bypass the rules;
// directories are walked and filtered.
func Resolve(args []string, rules Rules) (Result, error) {
	var res Result

	for _, arg := range args {
		if err := checkPath(arg); err != nil {
			return res, err
		}
	}

	include, err := pathmatch.NewMatcher(trimDotSlash(rules.Include))
	if err != nil {
		return res, fmt.Errorf("compiling include patterns: %w", err)
	}

	exclude, err := pathmatch.NewMatcher(trimDotSlash(rules.Exclude))
	if err != nil {
		return res, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	keep := func(path string) bool {
		path = filepath.ToSlash(path)

		return (!rules.filtersIncludes() || include.MatchAny(path)) && !exclude.MatchAny(path)
	}

	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		res.Files = append(res.Files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return res, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			res.Scanned++

			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			res.Scanned++

			if keep(filepath.Clean(path)) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return res, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	if len(res.Files) == 0 {
		return res, fmt.Errorf("%w: %v", ErrNoMatches, args)
	}

	return res, nil
}

// Walk returns every file below args, without filtering.
func Walk(args []string) ([]string, error) {
	res, err := Resolve(args, Rules{})
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(res.Files))
	for i, path := range res.Files {
		paths[i] = filepath.ToSlash(path)
	}

	return paths, nil
}

// checkPath rejects absolute paths and paths leaving the working directory.
func checkPath(path string) error {
	if filepath.IsAbs(path) {
		return fmt.Errorf("absolute paths are not allowed: %q", path)
	}

	if clean := filepath.Clean(path); clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("paths must be within the current working directory: %q", path)
	}

	return nil
}

func trimDotSlash(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.TrimPrefix(p, "./")
	}

	return out
}
