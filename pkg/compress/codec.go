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

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrUnknownCodec = errors.New("unknown compression codec")
	ErrCorruptChunk = errors.New("corrupt compressed chunk")
)

const (
	Zstd   = "zstd"
	Snappy = "snappy"
	S2     = "s2"
	Zlib   = "zlib"
)

// Codec compresses one chunk at a time. Implementations are safe for
// concurrent use.
type Codec interface {
	Name() string
	Encode(dst, src []byte) ([]byte, error)
	Decode(dst, src []byte) ([]byte, error)
}

var codecs = map[string]Codec{}

func init() {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
	for _, c := range []Codec{zstdCodec{enc: enc, dec: dec}, snappyCodec{}, s2Codec{}, zlibCodec{}} {
		codecs[c.Name()] = c
	}
}

// Lookup returns the codec registered under name (case-insensitive).
func Lookup(name string) (Codec, error) {
	c, ok := codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func (zstdCodec) Name() string { return Zstd }

func (c zstdCodec) Encode(dst, src []byte) ([]byte, error) {
	return c.enc.EncodeAll(src, dst[:0]), nil
}

func (c zstdCodec) Decode(dst, src []byte) ([]byte, error) {
	return c.dec.DecodeAll(src, dst[:0])
}

type snappyCodec struct{}

func (snappyCodec) Name() string { return Snappy }

func (snappyCodec) Encode(dst, src []byte) ([]byte, error) {
	return snappy.Encode(dst, src), nil
}

func (snappyCodec) Decode(dst, src []byte) ([]byte, error) {
	return snappy.Decode(dst, src)
}

type s2Codec struct{}

func (s2Codec) Name() string { return S2 }

func (s2Codec) Encode(dst, src []byte) ([]byte, error) {
	return s2.Encode(dst, src), nil
}

func (s2Codec) Decode(dst, src []byte) ([]byte, error) {
	return s2.Decode(dst, src)
}

type zlibCodec struct{}

func (zlibCodec) Name() string { return Zlib }

func (zlibCodec) Encode(dst, src []byte) ([]byte, error) {
	buf := bytes.NewBuffer(dst[:0])
	w := zlib.NewWriter(buf)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (zlibCodec) Decode(dst, src []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	buf := bytes.NewBuffer(dst[:0])
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
