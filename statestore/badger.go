package statestore

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sjy-dv/smartstream/filestate"
)

var stateKeyPrefix = []byte("fs/")

type badgerStore struct {
	db *badger.DB
}

// OpenBadger keeps states in a badger directory.
func OpenBadger(dir string) (Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(&badgerLogger{log.With().Str("component", "badger").Logger()})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerStore{db: db}, nil
}

func stateKey(path string) []byte {
	k := make([]byte, 0, len(stateKeyPrefix)+len(path))
	k = append(k, stateKeyPrefix...)
	return append(k, path...)
}

func (bs *badgerStore) Get(path string) (*filestate.FileState, error) {
	var state *filestate.FileState
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey(path))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			s, err := filestate.Unmarshal(val)
			state = s
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (bs *badgerStore) Put(state *filestate.FileState) error {
	b, err := encode(state)
	if err != nil {
		return err
	}
	return bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stateKey(state.Path), b)
	})
}

func (bs *badgerStore) Delete(path string) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(stateKey(path))
	})
}

func (bs *badgerStore) Close() error {
	return bs.db.Close()
}

type badgerLogger struct {
	zerolog.Logger
}

func (bl *badgerLogger) Errorf(format string, v ...interface{}) {
	bl.Error().Msgf(format, v...)
}

func (bl *badgerLogger) Warningf(format string, v ...interface{}) {
	bl.Warn().Msgf(format, v...)
}

func (bl *badgerLogger) Infof(format string, v ...interface{}) {
	bl.Info().Msgf(format, v...)
}

func (bl *badgerLogger) Debugf(format string, v ...interface{}) {
	bl.Debug().Msgf(format, v...)
}
