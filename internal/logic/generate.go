package logic

import (
	"encoding/hex"
	"fmt"

	"github.com/benjaminwoods/mv2/internal/config"
	"github.com/benjaminwoods/mv2/internal/keys"
)

const defaultKeyLength = 16

// RunGenerate prints a new key. Kinds:
//   - letters: an ASCII-mode shift key (A-Z)
//   - bytes: a binary shift key, hex-encoded for use with --hex
//   - blocks: a block-size key (1-4)
//
// With a seed the key is derived deterministically.
func RunGenerate(cfg *config.Config, streams Streams) error {
	kind := cfg.Kind
	if kind == "" {
		kind = "letters"
	}

	length := cfg.Length
	if length == 0 {
		length = defaultKeyLength
	}

	var (
		raw []byte
		err error
	)

	if cfg.Seed != "" {
		raw, err = keys.Derive(cfg.Seed, kind, length)
	} else {
		raw, err = keys.Random(length)
	}

	if err != nil {
		return err
	}

	switch kind {
	case "letters":
		fmt.Fprintln(streams.Out, string(keys.Letters(raw)))
	case "bytes":
		fmt.Fprintln(streams.Out, hex.EncodeToString(raw))
	case "blocks":
		fmt.Fprintln(streams.Out, string(keys.BlockSizes(raw)))
	default:
		return fmt.Errorf("unknown key kind %q", kind)
	}

	return nil
}
