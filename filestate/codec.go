package filestate

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Marshal encodes a state for a metadata store.
func Marshal(s *FileState) ([]byte, error) {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode file state %s: %w", s.Path, err)
	}
	return b, nil
}

func Unmarshal(b []byte) (*FileState, error) {
	s := new(FileState)
	if err := msgpack.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("decode file state: %w", err)
	}
	return s, nil
}
