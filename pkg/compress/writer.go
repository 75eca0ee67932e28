package compress

import (
	"errors"
	"fmt"
	"io"

	"github.com/sjy-dv/smartstream/filestate"
)

const DefaultBufferSize = 256 * 1024

// Compress splits src into bufferSize chunks, compresses each on its own
// and writes them back to back to dst. The returned state is what a
// compressed file's FileState carries.
func Compress(dst io.Writer, src io.Reader, codecName string, bufferSize int) (*filestate.CompressionState, error) {
	codec, err := Lookup(codecName)
	if err != nil {
		return nil, err
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	cs := &filestate.CompressionState{
		Codec:      codec.Name(),
		BufferSize: bufferSize,
	}
	raw := make([]byte, bufferSize)
	var out []byte
	for {
		n, rerr := io.ReadFull(src, raw)
		if n > 0 {
			out, err = codec.Encode(out, raw[:n])
			if err != nil {
				return nil, fmt.Errorf("encode chunk %d: %w", len(cs.OriginalPos), err)
			}
			if _, err := dst.Write(out); err != nil {
				return nil, err
			}
			cs.OriginalPos = append(cs.OriginalPos, cs.OriginalLength)
			cs.CompressedPos = append(cs.CompressedPos, cs.CompressedLength)
			cs.OriginalLength += int64(n)
			cs.CompressedLength += int64(len(out))
		}
		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			return cs, nil
		}
		if rerr != nil {
			return nil, rerr
		}
	}
}
