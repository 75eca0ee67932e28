// Licensed to sjy-dv under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. sjy-dv licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package statestore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sjy-dv/smartstream/filestate"
	"go.etcd.io/bbolt"
)

const (
	dbFileName  = "filestate.db"
	stateBucket = "filestate"
)

type boltStore struct {
	db *bbolt.DB
}

// OpenBolt keeps states in a single bbolt file inside dir.
func OpenBolt(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, dbFileName)
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, fmt.Errorf("open db failed %s: %w", path, err)
	}
	store := &boltStore{db: db}
	if err := store.createBucketIfNotExists(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (store *boltStore) createBucketIfNotExists() error {
	return store.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(stateBucket))
		return err
	})
}

func (store *boltStore) Get(path string) (*filestate.FileState, error) {
	var state *filestate.FileState
	err := store.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(stateBucket)).Get([]byte(path))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction; Unmarshal copies it out.
		s, err := filestate.Unmarshal(v)
		state = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (store *boltStore) Put(state *filestate.FileState) error {
	b, err := encode(state)
	if err != nil {
		return err
	}
	return store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put([]byte(state.Path), b)
	})
}

func (store *boltStore) Delete(path string) error {
	return store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Delete([]byte(path))
	})
}

func (store *boltStore) Close() error {
	return store.db.Close()
}
