package checksum

import (
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

var ErrMismatch = errors.New("checksum mismatch")

// Source is the stream being verified.
type Source interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
	Size() int64
}

// Sum returns the digest stored in FileState.Checksum for data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SumReader digests everything r yields.
func SumReader(r io.Reader) (uint64, error) {
	d := xxhash.New()
	if _, err := io.Copy(d, r); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}

// Reader verifies the content of src against an expected digest. The
// digest covers sequential reads only: it is fed while reads stay
// contiguous from offset 0 and checked by the read that delivers the last
// byte, or by the EOF that follows it.
// Seeking back to 0 starts a new pass; any other jump suspends
// verification until then. ReadAt is passed through.
type Reader struct {
	Source
	expected uint64
	digest   *xxhash.Digest
	hashed   int64
	pos      int64
	tracking bool
	verified bool
}

func NewReader(src Source, expected uint64) *Reader {
	return &Reader{
		Source:   src,
		expected: expected,
		digest:   xxhash.New(),
		tracking: true,
	}
}

// Verified reports whether a full pass matched the expected digest.
func (r *Reader) Verified() bool {
	return r.verified
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.Source.Read(p)
	if r.tracking && r.pos == r.hashed && n > 0 {
		r.digest.Write(p[:n])
		r.hashed += int64(n)
	}
	r.pos += int64(n)
	if r.tracking && !r.verified && r.hashed == r.Size() && (n > 0 || err == io.EOF) {
		if got := r.digest.Sum64(); got != r.expected {
			return n, fmt.Errorf("%w: got %016x, want %016x", ErrMismatch, got, r.expected)
		}
		r.verified = true
	}
	return n, err
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	pos, err := r.Source.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	r.pos = pos
	switch {
	case pos == 0:
		r.digest.Reset()
		r.hashed = 0
		r.tracking = true
	case pos != r.hashed:
		r.tracking = false
	}
	return pos, nil
}
