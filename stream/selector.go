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

package stream

import (
	"fmt"
	"maps"

	"github.com/rs/zerolog/log"
	"github.com/sjy-dv/smartstream/filestate"
	"github.com/sjy-dv/smartstream/pkg/dfs"
)

// Selector picks the backend for a file from its FileState. It keeps no
// state between calls and is safe for concurrent use.
type Selector struct {
	table Table
}

// NewSelector copies the table; later changes to it are not seen.
// Entries setting both or neither func are ignored.
func NewSelector(table Table) *Selector {
	t := make(Table, len(table))
	maps.Copy(t, table)
	for ft, b := range t {
		if !b.valid() {
			log.Warn().Str("fileType", ft.String()).Msg("ignoring malformed backend entry")
			delete(t, ft)
		}
	}
	return &Selector{table: t}
}

// Open checks that client is usable and returns the stream built by the
// backend registered for state.Type. Errors from the backend are returned
// as they are.
func (s *Selector) Open(client dfs.Client, path string, verifyChecksum bool, state *filestate.FileState) (Stream, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil client", ErrClientUnavailable)
	}
	if err := client.CheckOpen(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClientUnavailable, err)
	}
	if state == nil {
		return nil, ErrMissingFileState
	}

	backend, ok := s.table[state.Type]
	if !ok {
		log.Warn().Str("path", path).Str("fileType", state.Type.String()).
			Msg("no backend for file type")
		return nil, &UnsupportedFileTypeError{Type: state.Type}
	}
	log.Debug().Str("path", path).Str("fileType", state.Type.String()).
		Bool("verifyChecksum", verifyChecksum).Msg("open stream")

	if backend.OpenByState != nil {
		return backend.OpenByState(client, verifyChecksum, state)
	}
	return backend.Open(client, path, verifyChecksum, state)
}

// Supports reports whether a backend is registered for ft.
func (s *Selector) Supports(ft filestate.FileType) bool {
	_, ok := s.table[ft]
	return ok
}
