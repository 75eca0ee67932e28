package statestore

import (
	"sync"

	"github.com/sjy-dv/smartstream/filestate"
)

// memStore holds encoded states so callers never share a FileState.
type memStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func NewMemory() Store {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(path string) (*filestate.FileState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrStoreClosed
	}
	b, ok := m.data[path]
	if !ok {
		return nil, ErrNotFound
	}
	return filestate.Unmarshal(b)
}

func (m *memStore) Put(state *filestate.FileState) error {
	b, err := encode(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	m.data[state.Path] = b
	return nil
}

func (m *memStore) Delete(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, path)
	return nil
}

func (m *memStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	clear(m.data)
	return nil
}
