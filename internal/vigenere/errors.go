package vigenere

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned for empty keys or key symbols outside their alphabet.
	ErrInvalidKey = errors.New("invalid key")
	// ErrTruncatedBlock is returned when the final block would read past the end of the buffer.
	ErrTruncatedBlock = errors.New("truncated block")
	// ErrNonInvertibleSign is returned for sign values other than +1 and -1.
	ErrNonInvertibleSign = errors.New("non-invertible sign")
)

// TruncatedBlockError describes a final block that overruns the buffer.
type TruncatedBlockError struct {
	// Offset of the block in the buffer
	Offset int
	// Length declared by the block-size key
	Length int
	// Bytes remaining in the buffer at Offset
	Remaining int
}

func (e *TruncatedBlockError) Error() string {
	return fmt.Sprintf("%v: block at offset %d declares %d bytes, %d remain",
		ErrTruncatedBlock, e.Offset, e.Length, e.Remaining)
}

// Is makes errors.Is(err, ErrTruncatedBlock) hold.
func (e *TruncatedBlockError) Is(target error) bool {
	return target == ErrTruncatedBlock
}
