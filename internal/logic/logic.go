// Package logic orchestrates the mv2 commands.
package logic

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/benjaminwoods/mv2/internal/config"
	"github.com/benjaminwoods/mv2/internal/processor"
	"github.com/benjaminwoods/mv2/internal/selection"
	"github.com/benjaminwoods/mv2/internal/vigenere"
)

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run transforms the configured files, or standard input when the only argument is "-".
func Run(ctx context.Context, cfg *config.Config, streams Streams) error {
	if len(cfg.Files) == 1 && cfg.Files[0] == selection.Stdin {
		proc, err := processor.New(cfg)
		if err != nil {
			return fmt.Errorf("creating processor: %w", err)
		}

		return proc.Stream(streams.In, streams.Out)
	}

	start := time.Now()

	res, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	if cfg.Dry {
		return dryRun(cfg, res, start, streams)
	}

	proc, err := processor.New(cfg, processor.WithOutput(streams.Out, streams.Err))
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	summary, err := proc.Run(ctx)

	if cfg.Stats {
		printStats(streams.Err, res, summary, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running %s: %w", cfg.Direction, err)
	}

	return nil
}

// resolveFiles applies the include/exclude rules and replaces cfg.Files with the selection.
// Decoding without include rules selects files carrying the encode suffix.
func resolveFiles(cfg *config.Config) (selection.Result, error) {
	rules, err := loadRules(cfg)
	if err != nil {
		return selection.Result{}, err
	}

	if cfg.Direction == vigenere.Decode && !rules.HasIncludes {
		rules.Include = []string{"*" + cfg.EncodeSuffix}
		rules.HasIncludes = true
	}

	res, err := selection.Resolve(cfg.Files, rules)
	if err != nil {
		return res, err
	}

	cfg.Files = res.Files

	return res, nil
}

// loadRules merges flag and file patterns.
// Include filtering is on as soon as an include source is given, even an empty one.
func loadRules(cfg *config.Config) (selection.Rules, error) {
	include, err := selection.Merge(cfg.Include, cfg.IncludeFrom)
	if err != nil {
		return selection.Rules{}, fmt.Errorf("loading include patterns: %w", err)
	}

	exclude, err := selection.Merge(cfg.Exclude, cfg.ExcludeFrom)
	if err != nil {
		return selection.Rules{}, fmt.Errorf("loading exclude patterns: %w", err)
	}

	return selection.Rules{
		Include:     include,
		Exclude:     exclude,
		HasIncludes: len(cfg.Include) > 0 || cfg.IncludeFrom != "",
	}, nil
}

// dryRun validates the keys and prints what would be written.
func dryRun(cfg *config.Config, res selection.Result, start time.Time, streams Streams) error {
	if _, err := processor.NewTransformer(cfg); err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	summary := processor.Summary{Processed: len(cfg.Files)}

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Fprintf(streams.Out, "Processed %q -> %q\n", file, processor.OutputPath(file, cfg))
		}

		if info, err := os.Stat(file); err == nil {
			summary.TotalSize += info.Size()
		}
	}

	if cfg.Stats {
		printStats(streams.Err, res, summary, time.Since(start))
	}

	return nil
}

func printStats(w io.Writer, res selection.Result, summary processor.Summary, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Scanned:   %d\n", res.Scanned)
	fmt.Fprintf(w, "  Excluded:  %d\n", res.Excluded())
	fmt.Fprintf(w, "  Processed: %d\n", summary.Processed)
	fmt.Fprintf(w, "  Errors:    %d\n", summary.Errored)
	//nolint:gosec // sizes are non-negative
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, summary.TotalSize))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
