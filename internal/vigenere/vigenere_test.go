package vigenere_test

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/benjaminwoods/mv2/internal/vigenere"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomText(rng *rand.Rand, n int) []byte {
	const alphabet = letters + " "

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rng.IntN(len(alphabet))]
	}

	return buf
}

func randomLetterKey(rng *rand.Rand, n int) []byte {
	const alphabet = "@" + letters

	key := make([]byte, n)
	for i := range key {
		key[i] = alphabet[rng.IntN(len(alphabet))]
	}

	return key
}

func randomBytes(rng *rand.Rand, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(rng.UintN(256))
	}

	return buf
}

func randomBlockKey(rng *rand.Rand, n int) []byte {
	key := make([]byte, n)
	for i := range key {
		key[i] = byte('1' + rng.IntN(vigenere.MaxBlockLen))
	}

	return key
}

// alignedLength returns the buffer length covered by the first count blocks of blockKey.
func alignedLength(blockKey []byte, count int) int {
	var size int
	for p := range count {
		size += int(blockKey[p%len(blockKey)] - '0')
	}

	return size
}

func TestAlphabeticRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec // deterministic test data

	for range 200 {
		plain := randomText(rng, rng.IntN(64))
		key := randomLetterKey(rng, 1+rng.IntN(12))

		alpha, err := vigenere.NewAlphabetic(key)
		if err != nil {
			t.Fatalf("NewAlphabetic(%q): %v", key, err)
		}

		buf := bytes.Clone(plain)

		if err := alpha.Transform(buf, vigenere.Encode); err != nil {
			t.Fatalf("encode: %v", err)
		}

		if err := alpha.Transform(buf, vigenere.Decode); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if !bytes.Equal(buf, plain) {
			t.Fatalf("round trip with key %q: got %q, want %q", key, buf, plain)
		}
	}
}

func TestVariableBlockRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4)) //nolint:gosec // deterministic test data

	for range 200 {
		shiftKey := randomBytes(rng, 1+rng.IntN(16))
		blockKey := randomBlockKey(rng, 1+rng.IntN(8))
		plain := randomBytes(rng, alignedLength(blockKey, rng.IntN(40)))

		blocks, err := vigenere.NewVariableBlock(shiftKey, blockKey)
		if err != nil {
			t.Fatalf("NewVariableBlock: %v", err)
		}

		buf := bytes.Clone(plain)

		if err := blocks.Transform(buf, vigenere.Encode); err != nil {
			t.Fatalf("encode: %v", err)
		}

		if err := blocks.Transform(buf, vigenere.Decode); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if !bytes.Equal(buf, plain) {
			t.Fatalf("round trip with shift %x blocks %q: got %x, want %x", shiftKey, blockKey, buf, plain)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	once := bytes.Clone(all)
	vigenere.Normalize(once)

	twice := bytes.Clone(once)
	vigenere.Normalize(twice)

	if !bytes.Equal(once, twice) {
		t.Fatalf("Normalize is not idempotent:\nonce  %q\ntwice %q", once, twice)
	}

	for i, b := range once {
		switch {
		case i >= 128:
			if b != byte(i) {
				t.Errorf("byte %#x changed to %#x, want untouched", i, b)
			}
		case i >= 'a' && i <= 'z':
			if b != byte(i-32) {
				t.Errorf("byte %q normalized to %q, want %q", byte(i), b, byte(i-32))
			}
		case i >= 'A' && i <= 'Z':
			if b != byte(i) {
				t.Errorf("byte %q normalized to %q, want unchanged", byte(i), b)
			}
		default:
			if b != ' ' {
				t.Errorf("byte %#x normalized to %q, want space", i, b)
			}
		}
	}
}

func TestAlphabeticNoShiftIdentity(t *testing.T) {
	t.Parallel()

	alpha, err := vigenere.NewAlphabetic([]byte("@@@@"))
	if err != nil {
		t.Fatal(err)
	}

	buf := []byte("The quick brown fox, 42 times.")
	want := bytes.Clone(buf)
	vigenere.Normalize(want)

	if err := alpha.Transform(buf, vigenere.Encode); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(buf, want) {
		t.Errorf("got %q, want %q", buf, want)
	}
}

func TestAlphabeticKeyWrap(t *testing.T) {
	t.Parallel()

	key := []byte("BDF")

	alpha, err := vigenere.NewAlphabetic(key)
	if err != nil {
		t.Fatal(err)
	}

	buf := bytes.Repeat([]byte("A"), 10)
	if err := alpha.Transform(buf, vigenere.Encode); err != nil {
		t.Fatal(err)
	}

	for n := 0; n+len(key) < len(buf); n++ {
		if buf[n] != buf[n+len(key)] {
			t.Errorf("position %d got %q, position %d got %q; want equal shifts", n, buf[n], n+len(key), buf[n+len(key)])
		}
	}
}

func TestAlphabeticKeyIndexIncludesSpaces(t *testing.T) {
	t.Parallel()

	alpha, err := vigenere.NewAlphabetic([]byte("AB"))
	if err != nil {
		t.Fatal(err)
	}

	// The space consumes key symbol 'B', so the second letter uses 'A' again.
	buf := []byte("A A")
	if err := alpha.Transform(buf, vigenere.Encode); err != nil {
		t.Fatal(err)
	}

	if got, want := string(buf), "B B"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTruncatedBlock(t *testing.T) {
	t.Parallel()

	blocks, err := vigenere.NewVariableBlock([]byte{0, 0, 0, 1}, []byte("4"))
	if err != nil {
		t.Fatal(err)
	}

	buf := []byte{1, 2, 3, 4, 5}
	orig := bytes.Clone(buf)

	err = blocks.Transform(buf, vigenere.Encode)
	if !errors.Is(err, vigenere.ErrTruncatedBlock) {
		t.Fatalf("Transform error = %v, want ErrTruncatedBlock", err)
	}

	var truncated *vigenere.TruncatedBlockError
	if !errors.As(err, &truncated) {
		t.Fatalf("Transform error %T is not a *TruncatedBlockError", err)
	}

	if truncated.Offset != 4 || truncated.Length != 4 || truncated.Remaining != 1 {
		t.Errorf("got %+v, want offset 4, length 4, remaining 1", *truncated)
	}

	if !bytes.Equal(buf, orig) {
		t.Errorf("buffer modified on error: got %x, want %x", buf, orig)
	}
}

func TestPartialTruncate(t *testing.T) {
	t.Parallel()

	blocks, err := vigenere.NewVariableBlock([]byte{0, 0, 0, 1}, []byte("4"),
		vigenere.WithPartialPolicy(vigenere.PartialTruncate))
	if err != nil {
		t.Fatal(err)
	}

	buf := []byte{0, 0, 0, 0xff, 0xff}

	if err := blocks.Transform(buf, vigenere.Encode); err != nil {
		t.Fatal(err)
	}

	if want := []byte{0, 0, 1, 0, 0}; !bytes.Equal(buf, want) {
		t.Errorf("encode got %x, want %x", buf, want)
	}

	if err := blocks.Transform(buf, vigenere.Decode); err != nil {
		t.Fatal(err)
	}

	if want := []byte{0, 0, 0, 0xff, 0xff}; !bytes.Equal(buf, want) {
		t.Errorf("decode got %x, want %x", buf, want)
	}
}

func TestPlan(t *testing.T) {
	t.Parallel()

	blocks, err := vigenere.NewVariableBlock([]byte("k"), []byte("31"))
	if err != nil {
		t.Fatal(err)
	}

	plan, err := blocks.Plan(8)
	if err != nil {
		t.Fatal(err)
	}

	want := []vigenere.Block{
		{Index: 0, Offset: 0, Len: 3},
		{Index: 1, Offset: 3, Len: 1},
		{Index: 2, Offset: 4, Len: 3},
		{Index: 3, Offset: 7, Len: 1},
	}

	if len(plan) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(plan), len(want))
	}

	for i := range want {
		if plan[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, plan[i], want[i])
		}
	}
}

func TestEmptyBuffer(t *testing.T) {
	t.Parallel()

	for _, blockKey := range []string{"", "4"} {
		tr, err := vigenere.New([]byte("ABC"), []byte(blockKey))
		if err != nil {
			t.Fatalf("New(blocks %q): %v", blockKey, err)
		}

		if err := tr.Transform(nil, vigenere.Encode); err != nil {
			t.Errorf("%s mode: Transform(nil) = %v, want nil", tr.Mode(), err)
		}
	}
}

func TestInvalidKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		shift  string
		blocks string
	}{
		{name: "empty ascii shift key", shift: ""},
		{name: "lower-case ascii symbol", shift: "abc"},
		{name: "digit in ascii key", shift: "A1"},
		{name: "empty binary shift key", shift: "", blocks: "1"},
		{name: "block size zero", shift: "x", blocks: "10"},
		{name: "block size five", shift: "x", blocks: "5"},
		{name: "newline in block key", shift: "x", blocks: "12\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := vigenere.New([]byte(tt.shift), []byte(tt.blocks))
			if !errors.Is(err, vigenere.ErrInvalidKey) {
				t.Errorf("New(%q, %q) error = %v, want ErrInvalidKey", tt.shift, tt.blocks, err)
			}
		})
	}
}

func TestModeSelection(t *testing.T) {
	t.Parallel()

	ascii, err := vigenere.New([]byte("A"), nil)
	if err != nil {
		t.Fatal(err)
	}

	if ascii.Mode() != vigenere.ModeASCII {
		t.Errorf("no block key: mode %s, want ascii", ascii.Mode())
	}

	binary, err := vigenere.New([]byte{0xff}, []byte("2"))
	if err != nil {
		t.Fatal(err)
	}

	if binary.Mode() != vigenere.ModeBinary {
		t.Errorf("block key: mode %s, want binary", binary.Mode())
	}
}

func TestDirection(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"encode", "+1", "1"} {
		if dir, err := vigenere.ParseDirection(in); err != nil || dir != vigenere.Encode {
			t.Errorf("ParseDirection(%q) = %v, %v; want encode", in, dir, err)
		}
	}

	for _, in := range []string{"decode", "-1"} {
		if dir, err := vigenere.ParseDirection(in); err != nil || dir != vigenere.Decode {
			t.Errorf("ParseDirection(%q) = %v, %v; want decode", in, dir, err)
		}
	}

	for _, in := range []string{"2", "0", "-2", "enc", "sideways"} {
		if _, err := vigenere.ParseDirection(in); !errors.Is(err, vigenere.ErrNonInvertibleSign) {
			t.Errorf("ParseDirection(%q) error = %v, want ErrNonInvertibleSign", in, err)
		}
	}

	if vigenere.Encode.Sign() != 1 || vigenere.Decode.Sign() != -1 {
		t.Error("Sign() must be +1 for encode and -1 for decode")
	}
}

func TestOutOfRangeDirection(t *testing.T) {
	t.Parallel()

	alpha, err := vigenere.NewAlphabetic([]byte("A"))
	if err != nil {
		t.Fatal(err)
	}

	blocks, err := vigenere.NewVariableBlock([]byte{0x01}, []byte("1"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		tr   vigenere.Transformer
		in   []byte
	}{
		{name: "alphabetic", tr: alpha, in: []byte("abc")},
		{name: "variable block", tr: blocks, in: []byte{0x10, 0x20}},
	}

	for _, tt := range tests {
		for _, dir := range []vigenere.Direction{-1, 2, 7} {
			buf := bytes.Clone(tt.in)

			if err := tt.tr.Transform(buf, dir); !errors.Is(err, vigenere.ErrNonInvertibleSign) {
				t.Errorf("%s: Transform(%v) error = %v, want ErrNonInvertibleSign", tt.name, dir, err)
			}

			if !bytes.Equal(buf, tt.in) {
				t.Errorf("%s: Transform(%v) modified the buffer: %q", tt.name, dir, buf)
			}
		}
	}
}

func TestLayout(t *testing.T) {
	t.Parallel()

	layout, err := vigenere.NewLayout([]byte("1234"), vigenere.PartialReject)
	if err != nil {
		t.Fatal(err)
	}

	if layout.Cycle() != 10 {
		t.Errorf("Cycle() = %d, want 10", layout.Cycle())
	}

	for _, size := range []int{0, 1, 3, 6, 10, 11, 20} {
		if _, err := layout.Plan(size); err != nil {
			t.Errorf("Plan(%d): %v", size, err)
		}
	}

	for _, size := range []int{2, 4, 5, 7, 12} {
		if _, err := layout.Plan(size); !errors.Is(err, vigenere.ErrTruncatedBlock) {
			t.Errorf("Plan(%d) error = %v, want ErrTruncatedBlock", size, err)
		}
	}

	if _, err := vigenere.NewLayout(nil, vigenere.PartialReject); !errors.Is(err, vigenere.ErrInvalidKey) {
		t.Errorf("NewLayout(nil) error = %v, want ErrInvalidKey", err)
	}
}
