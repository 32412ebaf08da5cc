// Package asn1 implements the BER short/long-form length codec used
// throughout EN 50221: a single byte with the top bit clear encodes
// 0-127 directly, a byte 0x8N (N = 1..4) introduces N big-endian
// length bytes. It has no other relation to full ASN.1 BER.
package asn1

import "errors"

// ErrMalformedLength is returned by Decode when the first byte announces
// an encoding form the decoder does not recognise, or when the encoded
// length runs past the end of the input.
var ErrMalformedLength = errors.New("asn1: malformed length")

// ErrLengthOverflow is returned by Encode when the destination buffer is
// too small to hold the shortest legal encoding of length.
var ErrLengthOverflow = errors.New("asn1: encoded length exceeds max output size")

// MaxEncodedLen is the largest number of bytes a length prefix can occupy
// (one form byte plus four length bytes, covering the full uint32 range).
const MaxEncodedLen = 5

// Encode writes the shortest legal BER length form for length into dst
// and returns the number of bytes written. It fails with
// ErrLengthOverflow if the encoding would not fit within maxLen bytes of
// dst, mirroring the max_length guard the original C asn_1_encode takes.
func Encode(length uint32, dst []byte, maxLen int) (int, error) {
	if maxLen > len(dst) {
		maxLen = len(dst)
	}

	if length <= 127 {
		if maxLen < 1 {
			return 0, ErrLengthOverflow
		}
		dst[0] = byte(length)
		return 1, nil
	}

	// Shortest form: drop leading zero bytes.
	var tmp [4]byte
	tmp[0] = byte(length >> 24)
	tmp[1] = byte(length >> 16)
	tmp[2] = byte(length >> 8)
	tmp[3] = byte(length)
	start := 0
	for start < 3 && tmp[start] == 0 {
		start++
	}
	n := 4 - start
	if maxLen < 1+n {
		return 0, ErrLengthOverflow
	}
	dst[0] = 0x80 | byte(n)
	copy(dst[1:1+n], tmp[start:])
	return 1 + n, nil
}

// Decode reads a BER length prefix from the front of src and returns the
// decoded length plus the number of bytes the prefix occupied. It fails
// with ErrMalformedLength if src is empty, the first byte is an
// unsupported form (0x80, or N > 4), or the declared length bytes run
// past the end of src.
func Decode(src []byte) (length uint32, consumed int, err error) {
	if len(src) < 1 {
		return 0, 0, ErrMalformedLength
	}
	first := src[0]
	if first&0x80 == 0 {
		return uint32(first), 1, nil
	}
	n := int(first &^ 0x80)
	if n < 1 || n > 4 {
		return 0, 0, ErrMalformedLength
	}
	if len(src) < 1+n {
		return 0, 0, ErrMalformedLength
	}
	for _, b := range src[1 : 1+n] {
		length = length<<8 | uint32(b)
	}
	return length, 1 + n, nil
}
