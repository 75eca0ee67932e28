package checksum

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

func newSource(data string) memSource {
	return memSource{bytes.NewReader([]byte(data))}
}

func TestReaderVerifiesFullPass(t *testing.T) {
	data := "the quick brown fox"
	r := NewReader(newSource(data), Sum([]byte(data)))

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, string(b))
	assert.True(t, r.Verified())
}

func TestReaderDetectsMismatch(t *testing.T) {
	r := NewReader(newSource("tampered content"), Sum([]byte("original content")))

	_, err := io.ReadAll(r)
	assert.ErrorIs(t, err, ErrMismatch)
	assert.False(t, r.Verified())
}

func TestReaderSeekSuspendsAndRestarts(t *testing.T) {
	data := "0123456789abcdef"
	r := NewReader(newSource("0123456789abcdeX"), Sum([]byte(data)))

	// a partial pass from the middle is not checked
	_, err := r.Seek(4, io.SeekStart)
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	require.NoError(t, err)

	// a pass from zero is
	_, err = r.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestReaderAtPassesThrough(t *testing.T) {
	r := NewReader(newSource("abcdef"), 1)
	buf := make([]byte, 2)
	_, err := r.ReadAt(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, "cd", string(buf))
	assert.Equal(t, int64(6), r.Size())
}

func TestSumReader(t *testing.T) {
	got, err := SumReader(bytes.NewReader([]byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, Sum([]byte("abc")), got)
}

func TestReaderChecksAtLastByte(t *testing.T) {
	r := NewReader(newSource("tampered content"), Sum([]byte("original content")))
	buf := make([]byte, r.Size())
	n, err := r.Read(buf)
	assert.Equal(t, len(buf), n)
	assert.ErrorIs(t, err, ErrMismatch)

	data := "exact length"
	r = NewReader(newSource(data), Sum([]byte(data)))
	buf = make([]byte, r.Size())
	_, err = r.Read(buf)
	require.NoError(t, err)
	assert.True(t, r.Verified())

	_, err = r.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
}
