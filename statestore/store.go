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
	"errors"
	"fmt"

	"github.com/sjy-dv/smartstream/filestate"
)

var (
	ErrNotFound    = errors.New("file state not found")
	ErrEmptyPath   = errors.New("file state path is empty")
	ErrUnknownKind = errors.New("unknown state store kind")
	ErrStoreClosed = errors.New("state store is closed")
)

// Store persists the FileState of each path. Implementations are safe for
// concurrent use.
type Store interface {
	Get(path string) (*filestate.FileState, error)
	Put(state *filestate.FileState) error
	Delete(path string) error
	Close() error
}

type Kind = string

const (
	BoltKind   Kind = "bbolt"
	BadgerKind Kind = "badger"
	MemoryKind Kind = "memory"
)

// Open opens the engine named by kind at path. The memory engine ignores
// path.
func Open(kind Kind, path string) (Store, error) {
	switch kind {
	case BoltKind:
		return OpenBolt(path)
	case BadgerKind:
		return OpenBadger(path)
	case MemoryKind:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func encode(state *filestate.FileState) ([]byte, error) {
	if state == nil || state.Path == "" {
		return nil, ErrEmptyPath
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return filestate.Marshal(state)
}
