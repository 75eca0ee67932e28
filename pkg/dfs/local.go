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
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
)

// Local serves paths from a directory on the local disk. Paths are
// interpreted relative to the root, so "/data/a" is root/data/a.
type Local struct {
	root   string
	closed atomic.Bool
}

func NewLocal(root string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, err
	}
	return &Local{root: abs}, nil
}

func (l *Local) Root() string {
	return l.root
}

func (l *Local) CheckOpen() error {
	if l.closed.Load() {
		return ErrClientClosed
	}
	return nil
}

func (l *Local) resolve(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyPath
	}
	return filepath.Join(l.root, filepath.Clean("/"+name)), nil
}

func (l *Local) Open(name string) (File, error) {
	if err := l.CheckOpen(); err != nil {
		return nil, err
	}
	p, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(p)
	if err != nil {
		return nil, err
	}

	// get the file size
	stat, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, err
	}
	return &OSFile{fd: fd, size: stat.Size()}, nil
}

// Create truncates or creates name for writing, creating parent
// directories as needed.
func (l *Local) Create(name string) (io.WriteCloser, error) {
	if err := l.CheckOpen(); err != nil {
		return nil, err
	}
	p, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, err
	}
	return os.Create(p)
}

func (l *Local) Close() error {
	l.closed.Store(true)
	return nil
}

type OSFile struct {
	fd   *os.File
	size int64
}

func (of *OSFile) Read(p []byte) (n int, err error) {
	return of.fd.Read(p)
}

func (of *OSFile) ReadAt(b []byte, off int64) (n int, err error) {
	return of.fd.ReadAt(b, off)
}

func (of *OSFile) Seek(offset int64, whence int) (int64, error) {
	return of.fd.Seek(offset, whence)
}

func (of *OSFile) Size() int64 {
	return of.size
}

func (of *OSFile) Close() error {
	return of.fd.Close()
}
