package vigenere

// Transformer applies a keyed shift to a buffer in place.
type Transformer interface {
	Transform(buf []byte, dir Direction) error
	Mode() Mode
}

// Mode is the operating mode chosen by the shape of the keys.
type Mode int

const (
	// ModeASCII shifts normalized letters over the alphabet.
	ModeASCII Mode = iota
	// ModeBinary shifts variable-length blocks of raw bytes.
	ModeBinary
)

func (m Mode) String() string {
	if m == ModeBinary {
		return "binary"
	}

	return "ascii"
}

// ModeFor returns ModeBinary if a block-size key is present, ModeASCII otherwise.
func ModeFor(blockKey []byte) Mode {
	if len(blockKey) == 0 {
		return ModeASCII
	}

	return ModeBinary
}

// New builds the transformer matching the keys. Options only apply in binary mode.
func New(shiftKey, blockKey []byte, opts ...Option) (Transformer, error) {
	if ModeFor(blockKey) == ModeASCII {
		alpha, err := NewAlphabetic(shiftKey)
		if err != nil {
			return nil, err
		}

		return alpha, nil
	}

	blocks, err := NewVariableBlock(shiftKey, blockKey, opts...)
	if err != nil {
		return nil, err
	}

	return blocks, nil
}
