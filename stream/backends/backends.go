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

// Package backends holds the stream implementations for each file type
// and the default table wiring them into a stream.Selector.
package backends

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/sjy-dv/smartstream/filestate"
	"github.com/sjy-dv/smartstream/pkg/checksum"
	"github.com/sjy-dv/smartstream/pkg/minio"
	"github.com/sjy-dv/smartstream/stream"
)

var ErrNoObjectStore = errors.New("no object store configured")

// ObjectStore opens objects for the S3 backend.
type ObjectStore interface {
	OpenObject(ctx context.Context, bucket, key string) (*minio.Object, error)
}

type Options struct {
	// ObjectStore serves S3 files. When nil the table has no S3 entry.
	ObjectStore ObjectStore
	// ChunkCacheSize is the number of decoded chunks each compressed
	// stream keeps.
	ChunkCacheSize int
}

// Table returns the backends for every file type the options can serve.
func Table(opts Options) stream.Table {
	t := stream.Table{
		filestate.Normal:      stream.PathBackend(NewNormal),
		filestate.Compact:     stream.StateBackend(NewCompact),
		filestate.Compression: stream.PathBackend(NewCompression(opts.ChunkCacheSize)),
	}
	if opts.ObjectStore != nil {
		t[filestate.S3] = stream.PathBackend(NewS3(opts.ObjectStore))
	} else {
		log.Info().Msg("object store not configured, S3 files cannot be opened")
	}
	return t
}

// base is shared by every stream kind. The embedded stream is either the
// raw source or a checksum.Reader over it.
type base struct {
	stream.Stream
	verify bool
}

func newBase(src stream.Stream, verifyChecksum bool, state *filestate.FileState) base {
	if verifyChecksum && state.Checksum != 0 {
		return base{Stream: checksum.NewReader(src, state.Checksum), verify: true}
	}
	return base{Stream: src, verify: verifyChecksum}
}

// VerifyChecksum reports the flag the stream was opened with.
func (b *base) VerifyChecksum() bool {
	return b.verify
}

// sectionStream exposes part of a file, closing the file on Close.
type sectionStream struct {
	*io.SectionReader
	io.Closer
}
