package logic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benjaminwoods/mv2/internal/config"
	"github.com/benjaminwoods/mv2/internal/selection"
	"github.com/benjaminwoods/mv2/pkg/pathmatch"
)

// RunCheck fails if any include or exclude pattern matches no file.
func RunCheck(cfg *config.Config, streams Streams) error {
	rules, err := loadRules(cfg)
	if err != nil {
		return err
	}

	if len(rules.Include) == 0 && len(rules.Exclude) == 0 {
		return errors.New("no include or exclude patterns to check")
	}

	candidates, err := selection.Walk(cfg.Files)
	if err != nil {
		return err
	}

	failures := checkPatterns(streams.Err, "include", rules.Include, candidates, cfg.Quiet) +
		checkPatterns(streams.Err, "exclude", rules.Exclude, candidates, cfg.Quiet)

	if failures > 0 {
		return fmt.Errorf("%d pattern(s) matched no files", failures)
	}

	return nil
}

// checkPatterns reports the match count of each pattern and returns how many matched nothing.
func checkPatterns(w io.Writer, kind string, patterns, candidates []string, quiet bool) int {
	var failures int

	for _, pattern := range patterns {
		matcher, err := pathmatch.NewMatcher([]string{strings.TrimPrefix(pattern, "./")})
		if err != nil {
			fmt.Fprintf(w, "%s: %s: invalid pattern: %v\n", kind, pattern, err)

			failures++

			continue
		}

		var count int

		for _, path := range candidates {
			if matcher.MatchAny(path) {
				count++
			}
		}

		switch {
		case count == 0:
			fmt.Fprintf(w, "%s: %s: 0 files (ERROR)\n", kind, pattern)

			failures++
		case !quiet:
			fmt.Fprintf(w, "%s: %s: %d files\n", kind, pattern, count)
		}
	}

	return failures
}
