package backends

import (
	"fmt"
	"io"

	"github.com/sjy-dv/smartstream/filestate"
	"github.com/sjy-dv/smartstream/pkg/dfs"
	"github.com/sjy-dv/smartstream/stream"
)

// CompactStream reads a small file out of its container.
type CompactStream struct {
	base
	Container string
	Offset    int64
}

// NewCompact locates the file through state alone; compacted files keep
// no data at their own path.
func NewCompact(client dfs.Client, verifyChecksum bool, state *filestate.FileState) (stream.Stream, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	cs := state.Compact
	f, err := client.Open(cs.ContainerPath)
	if err != nil {
		return nil, err
	}
	if cs.Offset > f.Size() || cs.Length > f.Size()-cs.Offset {
		f.Close()
		return nil, fmt.Errorf("%w: range [%d,+%d) past container %s of %d bytes",
			filestate.ErrInvalidState, cs.Offset, cs.Length, cs.ContainerPath, f.Size())
	}
	src := &sectionStream{SectionReader: io.NewSectionReader(f, cs.Offset, cs.Length), Closer: f}
	return &CompactStream{
		base:      newBase(src, verifyChecksum, state),
		Container: cs.ContainerPath,
		Offset:    cs.Offset,
	}, nil
}
