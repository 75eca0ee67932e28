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

package dfs

import (
	"errors"
	"io"
)

var (
	ErrClientClosed = errors.New("dfs client is closed")
	ErrEmptyPath    = errors.New("dfs path is empty")
)

// File is a read-only handle on a stored file.
type File interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
	Size() int64
}

// Client is a session with a distributed filesystem. Implementations must
// be safe for concurrent use.
type Client interface {
	// CheckOpen returns a non-nil error once the client can no longer serve
	// requests.
	CheckOpen() error
	Open(name string) (File, error)
	Close() error
}

type Kind = string

const (
	LocalKind Kind = "local"
	HDFSKind  Kind = "hdfs"
)
