package logic

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/benjaminwoods/mv2/internal/config"
	"github.com/benjaminwoods/mv2/internal/keys"
	"github.com/benjaminwoods/mv2/internal/vigenere"
)

// RunInspect prints how the block-size key partitions each file.
// It fails if any file ends in a truncated block.
func RunInspect(cfg *config.Config, streams Streams) error {
	src := cfg.BlockSource()
	if src.IsZero() {
		return errors.New("inspect needs a block-size key (--block-key or --block-key-file)")
	}

	raw, err := keys.Load(src)
	if err != nil {
		return fmt.Errorf("loading block-size key: %w", err)
	}

	layout, err := vigenere.NewLayout(keys.Text(raw), vigenere.PartialReject)
	if err != nil {
		return err
	}

	res, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	var misaligned int

	for _, file := range res.Files {
		info, err := os.Stat(file)
		if err != nil {
			return fmt.Errorf("stat %q: %w", file, err)
		}

		size := int(info.Size())
		//nolint:gosec // sizes are non-negative
		human := humanize.IBytes(uint64(size))

		blocks, err := layout.Plan(size)

		var truncated *vigenere.TruncatedBlockError

		switch {
		case errors.As(err, &truncated):
			misaligned++

			fmt.Fprintf(streams.Out, "%q: %s, final block at offset %d needs %d bytes, %d remain\n",
				file, human, truncated.Offset, truncated.Length, truncated.Remaining)
		case err != nil:
			return err
		default:
			fmt.Fprintf(streams.Out, "%q: %s, %s blocks, aligned\n", file, human, humanize.Comma(int64(len(blocks))))
		}
	}

	if misaligned > 0 {
		return fmt.Errorf("%w: %d file(s) do not fit the block-size key (cycle of %d bytes)",
			vigenere.ErrTruncatedBlock, misaligned, layout.Cycle())
	}

	return nil
}
