package stream

import (
	"errors"
	"fmt"

	"github.com/sjy-dv/smartstream/filestate"
)

var (
	ErrClientUnavailable   = errors.New("client unavailable")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrMissingFileState    = errors.New("file state is nil")
)

// UnsupportedFileTypeError carries the file type no backend is registered
// for.
type UnsupportedFileTypeError struct {
	Type filestate.FileType
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedFileType, e.Type)
}

func (e *UnsupportedFileTypeError) Unwrap() error {
	return ErrUnsupportedFileType
}
