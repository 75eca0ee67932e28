package backends

import (
	"github.com/sjy-dv/smartstream/filestate"
	"github.com/sjy-dv/smartstream/pkg/dfs"
	"github.com/sjy-dv/smartstream/stream"
)

// NormalStream reads a file stored as is.
type NormalStream struct {
	base
	Path string
}

func NewNormal(client dfs.Client, path string, verifyChecksum bool, state *filestate.FileState) (stream.Stream, error) {
	f, err := client.Open(path)
	if err != nil {
		return nil, err
	}
	return &NormalStream{base: newBase(f, verifyChecksum, state), Path: path}, nil
}
