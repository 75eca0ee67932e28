package filestate

import "errors"

var (
	ErrUnknownFileType = errors.New("unknown file type")
	ErrInvalidState    = errors.New("invalid file state")
)
