package vigenere

const (
	space = ' '

	upperA = 'A'
	upperZ = 'Z'
	lowerA = 'a'
	lowerZ = 'z'

	caseOffset = lowerA - upperA
	asciiLimit = 128
)

// Normalize rewrites buf in place to its canonical alphabetic form.
// Lower-case letters become upper-case, every other 7-bit byte that is not an
// upper-case letter becomes a space, and bytes >= 128 are left untouched.
func Normalize(buf []byte) {
	for n, b := range buf {
		switch {
		case b >= asciiLimit:
		case b >= lowerA && b <= lowerZ:
			buf[n] = b - caseOffset
		case b >= upperA && b <= upperZ:
		default:
			buf[n] = space
		}
	}
}
