// Package keys loads and generates shift and block-size keys.
package keys

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/hkdf"

	"github.com/idelchi/gogen/pkg/key"
)

// ErrNoSource is returned when a Source names neither a literal nor a file.
var ErrNoSource = errors.New("no key source")

// Source describes where a key comes from.
type Source struct {
	// Literal key value
	Literal string
	// File holding the key
	File string
	// Hex marks the key as hex-encoded
	Hex bool
}

// IsZero reports whether the source names no key at all.
func (s Source) IsZero() bool {
	return s.Literal == "" && s.File == ""
}

// Load returns the raw key bytes described by src.
func Load(src Source) ([]byte, error) {
	var raw []byte

	switch {
	case src.Literal != "" && src.File != "":
		return nil, errors.New("key literal and key file are mutually exclusive")
	case src.Literal != "":
		raw = []byte(src.Literal)
	case src.File != "":
		data, err := os.ReadFile(filepath.Clean(src.File))
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		raw = data
	default:
		return nil, ErrNoSource
	}

	if !src.Hex {
		return raw, nil
	}

	decoded, err := key.FromHex(string(bytes.TrimSpace(raw)))
	if err != nil {
		return nil, fmt.Errorf("decoding hex key: %w", err)
	}

	return decoded, nil
}

// Text strips surrounding whitespace from a key made of printable symbols,
// such as an ASCII shift key or a block-size key read from a file.
func Text(raw []byte) []byte {
	return bytes.TrimSpace(raw)
}

// Random returns n bytes from the system random source.
func Random(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	return buf, nil
}

// Derive expands seed into n reproducible bytes with HKDF-SHA256.
// info separates keys derived from the same seed for different purposes.
func Derive(seed, info string, n int) ([]byte, error) {
	reader := hkdf.New(sha256.New, []byte(seed), nil, []byte("mv2/"+info))

	buf := make([]byte, n)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	return buf, nil
}

// Letters maps raw bytes onto ASCII shift-key symbols A-Z.
func Letters(raw []byte) []byte {
	const alphabet = 26

	out := make([]byte, len(raw))
	for i, b := range raw {
		out[i] = 'A' + b%alphabet
	}

	return out
}

// BlockSizes maps raw bytes onto block-size key symbols 1-4.
func BlockSizes(raw []byte) []byte {
	const sizes = 4

	out := make([]byte, len(raw))
	for i, b := range raw {
		out[i] = '1' + b%sizes
	}

	return out
}
