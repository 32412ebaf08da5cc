package transportfd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendWritesToFD(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	tr := New(int(w.Fd()))
	n, err := tr.Send(1, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	got := make([]byte, 5)
	_, err = r.Read(got)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))
}

func TestSendVectoredWritesAllChunks(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	tr := New(int(w.Fd()))
	n, err := tr.SendVectored(1, [][]byte{[]byte("foo"), []byte("bar")})
	require.NoError(t, err)
	require.Equal(t, 6, n)

	got := make([]byte, 6)
	_, err = r.Read(got)
	require.NoError(t, err)
	require.Equal(t, "foobar", string(got))
}
