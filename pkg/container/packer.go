package container

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/sjy-dv/smartstream/filestate"
)

// Packer appends small files to one container file and hands back the
// Compact state of each.
type Packer struct {
	w         io.Writer
	container string
	offset    int64
}

// NewPacker starts writing at offset of the container; pass the current
// container size when appending to an existing one.
func NewPacker(w io.Writer, containerPath string, offset int64) *Packer {
	return &Packer{w: w, container: containerPath, offset: offset}
}

func (p *Packer) Add(path string, r io.Reader) (*filestate.FileState, error) {
	d := xxhash.New()
	n, err := io.Copy(p.w, io.TeeReader(r, d))
	if err != nil {
		// whatever reached the container still occupies it
		p.offset += n
		return nil, fmt.Errorf("pack %s into %s: %w", path, p.container, err)
	}
	st := filestate.NewCompact(path, p.container, p.offset, n)
	st.Checksum = d.Sum64()
	p.offset += n
	return st, nil
}

// Offset is where the next file will start.
func (p *Packer) Offset() int64 {
	return p.offset
}
