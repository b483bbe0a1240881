package vigenere

import "fmt"

const (
	// MaxBlockLen is the largest block, in bytes, a block-size key may declare.
	MaxBlockLen = 4

	// shiftWidth is the number of shift-key bytes that make up one block's shift.
	shiftWidth = 4

	bitsPerByte = 8
)

// PartialPolicy decides what happens to a final block that overruns the buffer.
type PartialPolicy int

const (
	// PartialReject fails the transform with ErrTruncatedBlock.
	PartialReject PartialPolicy = iota
	// PartialTruncate shortens the final block to the bytes that remain.
	PartialTruncate
)

func (p PartialPolicy) String() string {
	switch p {
	case PartialReject:
		return "reject"
	case PartialTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("PartialPolicy(%d)", int(p))
	}
}

// ParsePartialPolicy parses "reject" or "truncate".
func ParsePartialPolicy(s string) (PartialPolicy, error) {
	switch s {
	case "", "reject":
		return PartialReject, nil
	case "truncate":
		return PartialTruncate, nil
	default:
		return 0, fmt.Errorf("unknown partial block policy %q (want reject or truncate)", s)
	}
}

// Option configures a VariableBlock.
type Option func(*VariableBlock)

// WithPartialPolicy sets the policy for an overrunning final block.
func WithPartialPolicy(policy PartialPolicy) Option {
	return func(v *VariableBlock) {
		v.layout.partial = policy
	}
}

// Block is one step of a block plan.
type Block struct {
	// Index of the block, used to address both keys
	Index int
	// Offset of the block in the buffer
	Offset int
	// Len is the number of bytes the block covers
	Len int
}

// Layout splits buffers into blocks according to a block-size key.
type Layout struct {
	sizes   []int
	partial PartialPolicy
}

// NewLayout validates blockKey. Every symbol must be one of the digits '1' to '4'.
func NewLayout(blockKey []byte, policy PartialPolicy) (*Layout, error) {
	if len(blockKey) == 0 {
		return nil, fmt.Errorf("%w: block-size key is empty", ErrInvalidKey)
	}

	sizes := make([]int, len(blockKey))

	for idx, sym := range blockKey {
		size := int(sym) - '0'
		if size < 1 || size > MaxBlockLen {
			return nil, fmt.Errorf("%w: block-size symbol %q at index %d is not in 1-%d",
				ErrInvalidKey, sym, idx, MaxBlockLen)
		}

		sizes[idx] = size
	}

	return &Layout{sizes: sizes, partial: policy}, nil
}

// Cycle is the number of bytes covered by one pass over the block-size key.
func (l *Layout) Cycle() int {
	var total int
	for _, size := range l.sizes {
		total += size
	}

	return total
}

// Plan lays out the blocks covering a buffer of the given size.
// Under PartialReject an overrunning final block yields a *TruncatedBlockError;
// under PartialTruncate it is shortened to fit.
func (l *Layout) Plan(size int) ([]Block, error) {
	var blocks []Block

	for n, p := 0, 0; n < size; p++ {
		length := l.sizes[p%len(l.sizes)]

		if remaining := size - n; length > remaining {
			if l.partial != PartialTruncate {
				return nil, &TruncatedBlockError{Offset: n, Length: length, Remaining: remaining}
			}

			length = remaining
		}

		blocks = append(blocks, Block{Index: p, Offset: n, Len: length})
		n += length
	}

	return blocks, nil
}

// VariableBlock is the MV2 binary transform.
type VariableBlock struct {
	shiftKey []byte
	layout   *Layout
}

// NewVariableBlock validates both keys and returns a binary-mode transformer.
func NewVariableBlock(shiftKey, blockKey []byte, opts ...Option) (*VariableBlock, error) {
	if len(shiftKey) == 0 {
		return nil, fmt.Errorf("%w: shift key is empty", ErrInvalidKey)
	}

	layout, err := NewLayout(blockKey, PartialReject)
	if err != nil {
		return nil, err
	}

	v := &VariableBlock{
		shiftKey: clone(shiftKey),
		layout:   layout,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Mode returns ModeBinary.
func (v *VariableBlock) Mode() Mode {
	return ModeBinary
}

// Plan lays out the blocks covering a buffer of the given size.
func (v *VariableBlock) Plan(size int) ([]Block, error) {
	return v.layout.Plan(size)
}

// shift concatenates the four shift-key bytes for block p, big-endian.
func (v *VariableBlock) shift(p int) uint32 {
	var s uint32

	for q := range shiftWidth {
		s = s<<bitsPerByte | uint32(v.shiftKey[(shiftWidth*p+q)%len(v.shiftKey)])
	}

	return s
}

// Transform shifts every block of buf in place.
// The buffer is untouched if the direction or the plan is invalid.
func (v *VariableBlock) Transform(buf []byte, dir Direction) error {
	if err := dir.Validate(); err != nil {
		return err
	}

	blocks, err := v.Plan(len(buf))
	if err != nil {
		return err
	}

	for _, blk := range blocks {
		shiftBlock(buf[blk.Offset:blk.Offset+blk.Len], v.shift(blk.Index), dir)
	}

	return nil
}

// shiftBlock applies (i + sign*shift) mod 2^(8*len(block)) to the big-endian
// value of block. The modulus divides 2^64, so uint64 wraparound gives the
// non-negative remainder for both signs.
func shiftBlock(block []byte, shift uint32, dir Direction) {
	var value uint64

	for _, b := range block {
		value = value<<bitsPerByte | uint64(b)
	}

	if dir == Decode {
		value -= uint64(shift)
	} else {
		value += uint64(shift)
	}

	mask := uint64(1)<<(bitsPerByte*len(block)) - 1
	value &= mask

	for q := len(block) - 1; q >= 0; q-- {
		block[q] = byte(value)
		value >>= bitsPerByte
	}
}
