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

package filestate

import (
	"fmt"
	"strings"
)

// FileType tells how the bytes of a logical file are laid out physically.
type FileType int8

const (
	Normal FileType = iota
	Compact
	Compression
	S3
)

func (t FileType) String() string {
	switch t {
	case Normal:
		return "NORMAL"
	case Compact:
		return "COMPACT"
	case Compression:
		return "COMPRESSION"
	case S3:
		return "S3"
	}
	return fmt.Sprintf("FileType(%d)", int8(t))
}

// ParseFileType accepts the names produced by String, case-insensitively.
func ParseFileType(s string) (FileType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NORMAL":
		return Normal, nil
	case "COMPACT":
		return Compact, nil
	case "COMPRESSION":
		return Compression, nil
	case "S3":
		return S3, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFileType, s)
}

// FileStage is the lifecycle stage of a storage transition.
type FileStage int8

const (
	Done FileStage = iota
	Processing
)

func (s FileStage) String() string {
	switch s {
	case Done:
		return "DONE"
	case Processing:
		return "PROCESSING"
	}
	return fmt.Sprintf("FileStage(%d)", int8(s))
}

// FileState is the metadata resolved for a path before it is opened.
// Only the section matching Type is meaningful.
type FileState struct {
	Path  string    `msgpack:"path"`
	Type  FileType  `msgpack:"type"`
	Stage FileStage `msgpack:"stage"`
	// Checksum is the xxhash64 digest of the logical content, 0 if unknown.
	Checksum uint64 `msgpack:"checksum,omitempty"`

	Compact     *CompactState     `msgpack:"compact,omitempty"`
	Compression *CompressionState `msgpack:"compression,omitempty"`
	Object      *S3State          `msgpack:"object,omitempty"`
}

// CompactState locates a small file inside a shared container file.
type CompactState struct {
	ContainerPath string `msgpack:"container_path"`
	Offset        int64  `msgpack:"offset"`
	Length        int64  `msgpack:"length"`
}

// CompressionState describes a file stored as independently compressed
// chunks. Chunk i starts at OriginalPos[i] in the logical content and at
// CompressedPos[i] in the stored file.
type CompressionState struct {
	Codec            string  `msgpack:"codec"`
	BufferSize       int     `msgpack:"buffer_size"`
	OriginalLength   int64   `msgpack:"original_length"`
	CompressedLength int64   `msgpack:"compressed_length"`
	OriginalPos      []int64 `msgpack:"original_pos"`
	CompressedPos    []int64 `msgpack:"compressed_pos"`
}

// S3State names the object holding the file's bytes.
type S3State struct {
	Bucket string `msgpack:"bucket"`
	Key    string `msgpack:"key"`
}

func NewNormal(path string) *FileState {
	return &FileState{Path: path, Type: Normal}
}

func NewCompact(path, container string, offset, length int64) *FileState {
	return &FileState{
		Path: path,
		Type: Compact,
		Compact: &CompactState{
			ContainerPath: container,
			Offset:        offset,
			Length:        length,
		},
	}
}

func NewCompression(path string, cs *CompressionState) *FileState {
	return &FileState{Path: path, Type: Compression, Compression: cs}
}

func NewS3(path, bucket, key string) *FileState {
	return &FileState{Path: path, Type: S3, Object: &S3State{Bucket: bucket, Key: key}}
}

// ObjectKey returns the object key, falling back to the path without its
// leading slash.
func (s *S3State) ObjectKey(path string) string {
	if s.Key != "" {
		return s.Key
	}
	return strings.TrimPrefix(path, "/")
}

// ChunkCount is the number of compressed chunks.
func (c *CompressionState) ChunkCount() int {
	return len(c.OriginalPos)
}

// Chunk returns the original and compressed byte ranges of chunk i as
// half-open intervals.
func (c *CompressionState) Chunk(i int) (origStart, origEnd, compStart, compEnd int64) {
	origStart, compStart = c.OriginalPos[i], c.CompressedPos[i]
	if i+1 < len(c.OriginalPos) {
		return origStart, c.OriginalPos[i+1], compStart, c.CompressedPos[i+1]
	}
	return origStart, c.OriginalLength, compStart, c.CompressedLength
}

// Validate reports metadata that no backend could serve.
func (s *FileState) Validate() error {
	switch s.Type {
	case Normal:
		return nil
	case Compact:
		if s.Compact == nil {
			return fmt.Errorf("%w: compact section missing", ErrInvalidState)
		}
		if s.Compact.ContainerPath == "" {
			return fmt.Errorf("%w: empty container path", ErrInvalidState)
		}
		if s.Compact.Offset < 0 || s.Compact.Length < 0 {
			return fmt.Errorf("%w: negative range [%d,+%d)", ErrInvalidState,
				s.Compact.Offset, s.Compact.Length)
		}
		return nil
	case Compression:
		return s.Compression.validate()
	case S3:
		if s.Object == nil || s.Object.Bucket == "" {
			return fmt.Errorf("%w: object bucket missing", ErrInvalidState)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownFileType, s.Type)
}

func (c *CompressionState) validate() error {
	if c == nil {
		return fmt.Errorf("%w: compression section missing", ErrInvalidState)
	}
	if c.Codec == "" {
		return fmt.Errorf("%w: codec missing", ErrInvalidState)
	}
	if len(c.OriginalPos) != len(c.CompressedPos) {
		return fmt.Errorf("%w: %d original positions, %d compressed positions",
			ErrInvalidState, len(c.OriginalPos), len(c.CompressedPos))
	}
	if c.OriginalLength < 0 || c.CompressedLength < 0 {
		return fmt.Errorf("%w: negative length %d/%d", ErrInvalidState,
			c.OriginalLength, c.CompressedLength)
	}
	if c.OriginalLength > 0 && len(c.OriginalPos) == 0 {
		return fmt.Errorf("%w: no chunks for %d bytes", ErrInvalidState, c.OriginalLength)
	}
	for i := range c.OriginalPos {
		ostart, oend, cstart, cend := c.Chunk(i)
		if ostart > oend || cstart > cend || (i == 0 && (ostart != 0 || cstart != 0)) {
			return fmt.Errorf("%w: chunk %d out of order", ErrInvalidState, i)
		}
	}
	return nil
}
