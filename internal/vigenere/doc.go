// Package vigenere implements the generalized Vigenère transforms behind mv2.
//
// Two modes exist:
//   - ASCII: text is normalized to upper-case letters and spaces, then each
//     letter is shifted over the 26-letter alphabet by a repeating key.
//   - Binary (MV2): the buffer is split into blocks of 1 to 4 bytes chosen by a
//     block-size key, and each block's big-endian value is shifted modulo
//     2^(8*length) by 32-bit amounts taken from the shift key.
//
// Buffers are transformed in place. All key and length validation happens
// before the first byte is written.
package vigenere
