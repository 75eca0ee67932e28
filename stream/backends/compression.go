package backends

import (
	"fmt"
	"io"

	"github.com/sjy-dv/smartstream/filestate"
	"github.com/sjy-dv/smartstream/pkg/compress"
	"github.com/sjy-dv/smartstream/pkg/dfs"
	"github.com/sjy-dv/smartstream/stream"
)

// CompressionStream decodes a chunked compressed file on the fly.
type CompressionStream struct {
	base
	Path  string
	Codec string
}

func NewCompression(cacheChunks int) stream.OpenFunc {
	return func(client dfs.Client, path string, verifyChecksum bool, state *filestate.FileState) (stream.Stream, error) {
		if err := state.Validate(); err != nil {
			return nil, err
		}
		cs := state.Compression
		f, err := client.Open(path)
		if err != nil {
			return nil, err
		}
		if cs.CompressedLength > f.Size() {
			f.Close()
			return nil, fmt.Errorf("%w: %s holds %d bytes, state expects %d",
				filestate.ErrInvalidState, path, f.Size(), cs.CompressedLength)
		}
		r, err := compress.NewReaderAt(f, cs, cacheChunks)
		if err != nil {
			f.Close()
			return nil, err
		}
		src := &sectionStream{SectionReader: io.NewSectionReader(r, 0, r.Size()), Closer: f}
		return &CompressionStream{
			base:  newBase(src, verifyChecksum, state),
			Path:  path,
			Codec: cs.Codec,
		}, nil
	}
}
