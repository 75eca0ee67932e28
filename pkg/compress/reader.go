package compress

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sjy-dv/smartstream/filestate"
	"golang.org/x/sync/singleflight"
)

const DefaultCacheChunks = 16

var ErrNegativeOffset = errors.New("negative offset")

// ReaderAt serves random reads of the original content of a chunked
// compressed file. Decoded chunks are kept in an LRU; concurrent misses on
// the same chunk decode it once.
type ReaderAt struct {
	src   io.ReaderAt
	state *filestate.CompressionState
	codec Codec
	cache *lru.Cache[int, []byte]
	group singleflight.Group
}

func NewReaderAt(src io.ReaderAt, state *filestate.CompressionState, cacheChunks int) (*ReaderAt, error) {
	codec, err := Lookup(state.Codec)
	if err != nil {
		return nil, err
	}
	if cacheChunks <= 0 {
		cacheChunks = DefaultCacheChunks
	}
	cache, err := lru.New[int, []byte](cacheChunks)
	if err != nil {
		return nil, err
	}
	return &ReaderAt{src: src, state: state, codec: codec, cache: cache}, nil
}

// Size is the length of the original content.
func (r *ReaderAt) Size() int64 {
	return r.state.OriginalLength
}

func (r *ReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	n := 0
	for n < len(p) && off < r.state.OriginalLength {
		i := r.chunkIndex(off)
		chunk, err := r.chunk(i)
		if err != nil {
			return n, err
		}
		start := r.state.OriginalPos[i]
		c := copy(p[n:], chunk[off-start:])
		if c == 0 {
			return n, fmt.Errorf("%w: chunk %d yields nothing at %d", ErrCorruptChunk, i, off)
		}
		n += c
		off += int64(c)
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (r *ReaderAt) chunkIndex(off int64) int {
	pos := r.state.OriginalPos
	return sort.Search(len(pos), func(i int) bool { return pos[i] > off }) - 1
}

func (r *ReaderAt) chunk(i int) ([]byte, error) {
	if b, ok := r.cache.Get(i); ok {
		return b, nil
	}
	v, err, _ := r.group.Do(strconv.Itoa(i), func() (interface{}, error) {
		if b, ok := r.cache.Get(i); ok {
			return b, nil
		}
		ostart, oend, cstart, cend := r.state.Chunk(i)
		raw := make([]byte, cend-cstart)
		if n, err := r.src.ReadAt(raw, cstart); err != nil && !(errors.Is(err, io.EOF) && n == len(raw)) {
			return nil, fmt.Errorf("read chunk %d at %d: %w", i, cstart, err)
		}
		b, err := r.codec.Decode(nil, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %v", ErrCorruptChunk, i, err)
		}
		if int64(len(b)) != oend-ostart {
			return nil, fmt.Errorf("%w: chunk %d decoded to %d bytes, want %d",
				ErrCorruptChunk, i, len(b), oend-ostart)
		}
		r.cache.Add(i, b)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
