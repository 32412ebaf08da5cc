package reassembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndTake(t *testing.T) {
	b := New(0)
	assert.True(t, b.Empty())

	require.NoError(t, b.Append([]byte("ab")))
	require.NoError(t, b.Append([]byte("cd")))
	assert.Equal(t, 4, b.Len())

	got := b.Take()
	assert.Equal(t, []byte("abcd"), got)
	assert.True(t, b.Empty())
	assert.Equal(t, 0, b.Len())
}

func TestAppendDoesNotAliasCaller(t *testing.T) {
	b := New(0)
	src := []byte("hello")
	require.NoError(t, b.Append(src))
	src[0] = 'X'
	got := b.Take()
	assert.Equal(t, []byte("hello"), got)
}

func TestOverflow(t *testing.T) {
	b := New(4)
	require.NoError(t, b.Append([]byte("ab")))
	err := b.Append([]byte("xyz"))
	assert.ErrorIs(t, err, ErrOverflow)
	// Rejected append must not mutate state.
	assert.Equal(t, 2, b.Len())
}

func TestDefaultCap(t *testing.T) {
	b := New(-1)
	assert.NoError(t, b.Append(make([]byte, DefaultCap)))
	assert.ErrorIs(t, b.Append([]byte{0}), ErrOverflow)
}
