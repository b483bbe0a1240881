package vigenere

import "fmt"

const (
	alphabetSize = 26

	// noShift is the key symbol that leaves a letter unchanged.
	noShift = '@'
)

// Alphabetic is the 26-letter repeating-key shift used in ASCII mode.
type Alphabetic struct {
	key []byte
}

// NewAlphabetic validates shiftKey and returns an ASCII-mode transformer.
// Each key symbol must be '@' or an upper-case letter; the shift it applies is
// the symbol minus '@', so '@' leaves letters alone and 'A' shifts by one.
func NewAlphabetic(shiftKey []byte) (*Alphabetic, error) {
	if len(shiftKey) == 0 {
		return nil, fmt.Errorf("%w: shift key is empty", ErrInvalidKey)
	}

	for idx, sym := range shiftKey {
		if sym < noShift || sym > upperZ {
			return nil, fmt.Errorf("%w: shift key symbol %q at index %d is not '@' or A-Z", ErrInvalidKey, sym, idx)
		}
	}

	return &Alphabetic{key: clone(shiftKey)}, nil
}

// Mode returns ModeASCII.
func (a *Alphabetic) Mode() Mode {
	return ModeASCII
}

// Transform normalizes buf and shifts every non-space byte in place.
// Key symbols are indexed by buffer position, spaces included.
func (a *Alphabetic) Transform(buf []byte, dir Direction) error {
	if err := dir.Validate(); err != nil {
		return err
	}

	Normalize(buf)

	sign := dir.Sign()

	for n, b := range buf {
		if b == space {
			continue
		}

		shift := int(a.key[n%len(a.key)]) - noShift
		buf[n] = byte(upperA + mod(int(b)-upperA+alphabetSize+sign*shift, alphabetSize))
	}

	return nil
}

// mod returns the non-negative remainder of x / m.
func mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}

	return r
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
