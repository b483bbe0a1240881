package vigenere

import (
	"fmt"
	"strings"
)

// Direction selects whether a transform encodes or decodes.
type Direction int

const (
	// Encode shifts forward.
	Encode Direction = iota
	// Decode shifts backward and inverts Encode.
	Decode
)

// Sign returns +1 for Encode and -1 for Decode.
func (d Direction) Sign() int {
	if d == Decode {
		return -1
	}

	return 1
}

// Validate returns ErrNonInvertibleSign for values other than Encode and Decode.
func (d Direction) Validate() error {
	if d != Encode && d != Decode {
		return fmt.Errorf("%w: %v", ErrNonInvertibleSign, d)
	}

	return nil
}

func (d Direction) String() string {
	switch d {
	case Encode:
		return "encode"
	case Decode:
		return "decode"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "encode", "decode" or a sign of +1, 1 or -1.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encode", "+1", "1":
		return Encode, nil
	case "decode", "-1":
		return Decode, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrNonInvertibleSign, s)
	}
}
