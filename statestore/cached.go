package statestore

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"github.com/sjy-dv/smartstream/filestate"
)

// Cached fronts a Store with an LRU of encoded states. Absent paths are
// not cached. A fill that raced with a write is dropped, so the cache
// never holds a state older than the last Put or Delete.
type Cached struct {
	Store
	cache *lru.Cache[string, []byte]

	mu  sync.Mutex
	gen uint64
}

func NewCached(s Store, size int) (*Cached, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Cached{Store: s, cache: cache}, nil
}

func (c *Cached) Get(path string) (*filestate.FileState, error) {
	if b, ok := c.cache.Get(path); ok {
		return filestate.Unmarshal(b)
	}
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	state, err := c.Store.Get(path)
	if err != nil {
		return nil, err
	}
	b, err := filestate.Marshal(state)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("file state not cached")
		return state, nil
	}
	c.mu.Lock()
	if c.gen == gen {
		c.cache.Add(path, b)
	}
	c.mu.Unlock()
	return state, nil
}

func (c *Cached) invalidate(path string) {
	c.mu.Lock()
	c.gen++
	c.cache.Remove(path)
	c.mu.Unlock()
}

func (c *Cached) Put(state *filestate.FileState) error {
	if err := c.Store.Put(state); err != nil {
		return err
	}
	c.invalidate(state.Path)
	return nil
}

func (c *Cached) Delete(path string) error {
	if err := c.Store.Delete(path); err != nil {
		return err
	}
	c.invalidate(path)
	return nil
}

func (c *Cached) Close() error {
	c.cache.Purge()
	return c.Store.Close()
}

// Len is the number of cached states.
func (c *Cached) Len() int {
	return c.cache.Len()
}
