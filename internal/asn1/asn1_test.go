package asn1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 126, 127, 128, 255, 256, 65535, 65536, 1 << 24, 0xFFFFFFFF}
	for _, length := range cases {
		buf := make([]byte, MaxEncodedLen)
		n, err := Encode(length, buf, MaxEncodedLen)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, MaxEncodedLen)

		got, consumed, err := Decode(buf[:n])
		require.NoError(t, err)
		assert.Equal(t, n, consumed)
		assert.Equal(t, length, got)
	}
}

func TestEncodeShortestForm(t *testing.T) {
	buf := make([]byte, MaxEncodedLen)

	n, err := Encode(0, buf, MaxEncodedLen)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0x00), buf[0])

	n, err = Encode(127, buf, MaxEncodedLen)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0x7F), buf[0])

	n, err = Encode(128, buf, MaxEncodedLen)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, byte(0x81), buf[0])
	assert.Equal(t, byte(0x80), buf[1])

	n, err = Encode(256, buf, MaxEncodedLen)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, byte(0x82), buf[0])
}

func TestEncodeOverflow(t *testing.T) {
	buf := make([]byte, 1)
	_, err := Encode(200, buf, 1)
	assert.ErrorIs(t, err, ErrLengthOverflow)
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := Decode(nil)
	assert.ErrorIs(t, err, ErrMalformedLength)

	// 0x80 itself (N=0) is not a legal form.
	_, _, err = Decode([]byte{0x80})
	assert.ErrorIs(t, err, ErrMalformedLength)

	// N=5 is out of range (max 4 length bytes).
	_, _, err = Decode([]byte{0x85, 1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrMalformedLength)

	// Declared length bytes run past end of input.
	_, _, err = Decode([]byte{0x82, 0x01})
	assert.ErrorIs(t, err, ErrMalformedLength)
}

func TestDecodeLongForm(t *testing.T) {
	length, consumed, err := Decode([]byte{0x82, 0x01, 0x2C, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x012C), length)
	assert.Equal(t, 3, consumed)
}
