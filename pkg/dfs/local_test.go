package dfs

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, l *Local, name, data string) {
	t.Helper()
	w, err := l.Create(name)
	require.NoError(t, err)
	_, err = io.WriteString(w, data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestLocalOpen(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	writeFile(t, l, "/data/a.txt", "hello world")

	f, err := l.Open("/data/a.txt")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, int64(11), f.Size())

	buf := make([]byte, 5)
	_, err = f.ReadAt(buf, 6)
	require.NoError(t, err)
	assert.Equal(t, "world", string(buf))

	pos, err := f.Seek(6, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)
	rest, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "world", string(rest))
}

func TestLocalStaysInsideRoot(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	writeFile(t, l, "/a", "inside")

	f, err := l.Open("../../a")
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "inside", string(b))

	_, err = l.Open("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestLocalClosed(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, l.CheckOpen())
	require.NoError(t, l.Close())

	assert.ErrorIs(t, l.CheckOpen(), ErrClientClosed)
	_, err = l.Open("/a")
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestHDFSWithoutConnection(t *testing.T) {
	h := &HDFS{}
	assert.ErrorIs(t, h.CheckOpen(), ErrClientClosed)
	_, err := h.Open("/a")
	assert.ErrorIs(t, err, ErrClientClosed)
	assert.NoError(t, h.Close())
}
