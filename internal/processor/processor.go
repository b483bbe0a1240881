// Package processor applies the configured transform to files.
package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/benjaminwoods/mv2/internal/config"
	"github.com/benjaminwoods/mv2/internal/fileutil"
	"github.com/benjaminwoods/mv2/internal/keys"
	"github.com/benjaminwoods/mv2/internal/vigenere"
)

// Processor transforms whole files in memory, several at a time.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// transformer is shared by all workers; it holds no per-call state
	transformer vigenere.Transformer

	// stdout and stderr receive progress and error lines
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Processor.
type Option func(*Processor)

// WithOutput redirects progress and error lines.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *Processor) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// New loads the keys named by cfg and builds the matching transformer.
func New(cfg *config.Config, opts ...Option) (*Processor, error) {
	transformer, err := NewTransformer(cfg)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		cfg:         cfg,
		transformer: transformer,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// NewTransformer loads the configured keys and selects the mode: binary when a
// block-size key is configured, ASCII otherwise.
func NewTransformer(cfg *config.Config) (vigenere.Transformer, error) {
	if err := cfg.ValidateKeys(); err != nil {
		return nil, err
	}

	shiftKey, err := keys.Load(cfg.ShiftSource())
	if err != nil {
		return nil, fmt.Errorf("loading shift key: %w", err)
	}

	var blockKey []byte

	if src := cfg.BlockSource(); !src.IsZero() {
		raw, err := keys.Load(src)
		if err != nil {
			return nil, fmt.Errorf("loading block-size key: %w", err)
		}

		blockKey = keys.Text(raw)
	}

	if vigenere.ModeFor(blockKey) == vigenere.ModeASCII && !cfg.Hex {
		shiftKey = keys.Text(shiftKey)
	}

	policy, err := cfg.PartialPolicy()
	if err != nil {
		return nil, err
	}

	transformer, err := vigenere.New(shiftKey, blockKey, vigenere.WithPartialPolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("building transformer: %w", err)
	}

	return transformer, nil
}

// Mode reports the mode selected from the keys.
func (p *Processor) Mode() vigenere.Mode {
	return p.transformer.Mode()
}

// Stream transforms everything read from r and writes it to w.
func (p *Processor) Stream(r io.Reader, w io.Writer) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if err := p.transformer.Transform(buf, p.cfg.Direction); err != nil {
		return fmt.Errorf("transforming input: %w", err)
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// Run transforms every file in the configuration, at most cfg.Parallel at a time.
// Failures are reported per file; the returned error is the first one seen.
//
//nolint:cyclop // parallel pipeline with printer goroutine
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	results := make(chan Result, len(p.cfg.Files))
	printed := make(chan struct{})

	go func() {
		defer close(printed)

		for result := range results {
			if result.Error != nil {
				summary.Errored++

				fmt.Fprintf(p.stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			summary.Processed++
			summary.TotalSize += result.OutputSize

			if !p.cfg.Quiet {
				fmt.Fprintf(p.stdout, "Processed %q -> %q\n", result.Input, result.Output)
			}

			// Decoding without suffixes rewrites the input in place.
			if !p.cfg.Delete || filepath.Clean(result.Input) == filepath.Clean(result.Output) {
				continue
			}

			if err := os.Remove(result.Input); err != nil {
				fmt.Fprintf(p.stderr, "Error deleting %q: %v\n", result.Input, err)
			} else if !p.cfg.Quiet {
				fmt.Fprintf(p.stdout, "Deleted %q\n", result.Input)
			}
		}
	}()

	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results <- Result{Input: file, Error: err}

				return err
			}

			outPath := OutputPath(file, p.cfg)

			size, err := p.processFile(file, outPath)
			if err != nil {
				results <- Result{Input: file, Error: err}

				return err
			}

			results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err := group.Wait()

	close(results)

	<-printed

	if err != nil {
		return summary, fmt.Errorf("processing files: %w", err)
	}

	return summary, nil
}

// processFile loads one file, transforms it and writes the result atomically.
func (p *Processor) processFile(filename, outPath string) (int64, error) {
	buf, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}

	if err := p.transformer.Transform(buf, p.cfg.Direction); err != nil {
		return 0, fmt.Errorf("transforming file: %w", err)
	}

	size, err := fileutil.WriteAtomic(filename, outPath, buf, fileutil.Options{
		PreserveTimestamps: p.cfg.PreserveTimestamps,
	})
	if err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}

	return size, nil
}

// OutputPath appends the encode suffix when encoding. When decoding it strips
// the encode suffix and appends the decode suffix.
func OutputPath(filename string, cfg *config.Config) string {
	ext := cfg.EncodeSuffix

	if cfg.Direction == vigenere.Decode {
		filename = strings.TrimSuffix(filename, cfg.EncodeSuffix)
		ext = cfg.DecodeSuffix
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}
