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
	"io"

	"github.com/sjy-dv/smartstream/filestate"
	"github.com/sjy-dv/smartstream/pkg/dfs"
)

// Stream is what every backend returns, whatever the physical layout of
// the file. Reads go through the logical content of the file.
type Stream interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
	Size() int64
}

// OpenFunc builds a stream for a file addressed by path.
type OpenFunc func(client dfs.Client, path string, verifyChecksum bool, state *filestate.FileState) (Stream, error)

// OpenByStateFunc builds a stream for a file located through its state
// alone. It never sees the path.
type OpenByStateFunc func(client dfs.Client, verifyChecksum bool, state *filestate.FileState) (Stream, error)

// Backend is one entry of a Table. Exactly one of the two funcs is set.
type Backend struct {
	Open        OpenFunc
	OpenByState OpenByStateFunc
}

func PathBackend(fn OpenFunc) Backend {
	return Backend{Open: fn}
}

func StateBackend(fn OpenByStateFunc) Backend {
	return Backend{OpenByState: fn}
}

func (b Backend) valid() bool {
	return (b.Open == nil) != (b.OpenByState == nil)
}

// Table maps each file type to the backend serving it.
type Table map[filestate.FileType]Backend
