package compress

import (
	"bytes"
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(n int) []byte {
	rng := rand.New(rand.NewSource(7))
	b := make([]byte, n)
	for i := range b {
		// compressible but not constant
		b[i] = byte('a' + rng.Intn(6))
	}
	return b
}

func TestCodecs(t *testing.T) {
	data := sample(10_000)
	for _, name := range []string{Zstd, Snappy, S2, Zlib} {
		c, err := Lookup(name)
		require.NoError(t, err)
		enc, err := c.Encode(nil, data)
		require.NoError(t, err, name)
		dec, err := c.Decode(nil, enc)
		require.NoError(t, err, name)
		assert.Equal(t, data, dec, name)
	}
	_, err := Lookup("lzo")
	assert.ErrorIs(t, err, ErrUnknownCodec)
	_, err = Lookup("ZSTD")
	assert.NoError(t, err)
}

func TestCompressLayout(t *testing.T) {
	data := sample(2500)
	var buf bytes.Buffer
	cs, err := Compress(&buf, bytes.NewReader(data), Snappy, 1000)
	require.NoError(t, err)

	assert.Equal(t, Snappy, cs.Codec)
	assert.Equal(t, int64(2500), cs.OriginalLength)
	assert.Equal(t, int64(buf.Len()), cs.CompressedLength)
	assert.Equal(t, []int64{0, 1000, 2000}, cs.OriginalPos)
	require.Len(t, cs.CompressedPos, 3)
	assert.Zero(t, cs.CompressedPos[0])
}

func TestCompressEmpty(t *testing.T) {
	var buf bytes.Buffer
	cs, err := Compress(&buf, bytes.NewReader(nil), Zstd, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBufferSize, cs.BufferSize)
	assert.Zero(t, cs.OriginalLength)
	assert.Empty(t, cs.OriginalPos)

	r, err := NewReaderAt(bytes.NewReader(buf.Bytes()), cs, 0)
	require.NoError(t, err)
	n, err := r.ReadAt(make([]byte, 4), 0)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderAtRandomAccess(t *testing.T) {
	data := sample(5000)
	for _, name := range []string{Zstd, Snappy, S2, Zlib} {
		var buf bytes.Buffer
		cs, err := Compress(&buf, bytes.NewReader(data), name, 700)
		require.NoError(t, err)

		r, err := NewReaderAt(bytes.NewReader(buf.Bytes()), cs, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), r.Size())

		// spans several chunks
		p := make([]byte, 1600)
		n, err := r.ReadAt(p, 650)
		require.NoError(t, err, name)
		assert.Equal(t, 1600, n)
		assert.Equal(t, data[650:2250], p, name)

		// short read at the end
		n, err = r.ReadAt(p, 4900)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, 100, n)
		assert.Equal(t, data[4900:], p[:n])

		_, err = r.ReadAt(p, -1)
		assert.ErrorIs(t, err, ErrNegativeOffset)

		all, err := io.ReadAll(io.NewSectionReader(r, 0, r.Size()))
		require.NoError(t, err)
		assert.Equal(t, data, all, name)
	}
}

func TestReaderAtConcurrent(t *testing.T) {
	data := sample(8000)
	var buf bytes.Buffer
	cs, err := Compress(&buf, bytes.NewReader(data), S2, 512)
	require.NoError(t, err)
	r, err := NewReaderAt(bytes.NewReader(buf.Bytes()), cs, 4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			off := int64(g * 431 % 7000)
			p := make([]byte, 900)
			_, err := r.ReadAt(p, off)
			assert.NoError(t, err)
			assert.Equal(t, data[off:off+900], p)
		}(g)
	}
	wg.Wait()
}

func TestReaderAtCorruptChunk(t *testing.T) {
	data := sample(3000)
	var buf bytes.Buffer
	cs, err := Compress(&buf, bytes.NewReader(data), Zstd, 1000)
	require.NoError(t, err)

	stored := buf.Bytes()
	for i := cs.CompressedPos[1]; i < cs.CompressedPos[2]; i++ {
		stored[i] = 0xff
	}
	r, err := NewReaderAt(bytes.NewReader(stored), cs, 0)
	require.NoError(t, err)

	p := make([]byte, 10)
	_, err = r.ReadAt(p, 0)
	assert.NoError(t, err)
	_, err = r.ReadAt(p, 1500)
	assert.ErrorIs(t, err, ErrCorruptChunk)
}
