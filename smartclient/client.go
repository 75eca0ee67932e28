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

package smartclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sjy-dv/smartstream/filestate"
	"github.com/sjy-dv/smartstream/pkg/dfs"
	"github.com/sjy-dv/smartstream/statestore"
	"github.com/sjy-dv/smartstream/stream"
	"golang.org/x/sync/errgroup"
)

var ErrFileProcessing = errors.New("file is being processed")

// Client opens logical files: it resolves the FileState of a path and
// hands it to the selector together with the dfs client.
type Client struct {
	dfs      dfs.Client
	states   statestore.Store
	selector *stream.Selector
}

func New(dfsClient dfs.Client, states statestore.Store, selector *stream.Selector) *Client {
	return &Client{dfs: dfsClient, states: states, selector: selector}
}

// FileState returns the stored state of path, or a Normal state when none
// is stored.
func (c *Client) FileState(path string) (*filestate.FileState, error) {
	st, err := c.states.Get(path)
	if errors.Is(err, statestore.ErrNotFound) {
		return filestate.NewNormal(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve file state %s: %w", path, err)
	}
	return st, nil
}

// SetFileState records the state of a path, typically after moving its
// data to another layout.
func (c *Client) SetFileState(st *filestate.FileState) error {
	return c.states.Put(st)
}

func (c *Client) Open(ctx context.Context, path string, verifyChecksum bool) (stream.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st, err := c.FileState(path)
	if err != nil {
		return nil, err
	}
	if st.Stage == filestate.Processing {
		return nil, fmt.Errorf("%w: %s is moving to %s", ErrFileProcessing, path, st.Type)
	}

	s, err := c.selector.Open(c.dfs, path, verifyChecksum, st)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("open failed")
		return nil, err
	}
	log.Debug().Str("stream", uuid.NewString()).Str("path", path).
		Str("fileType", st.Type.String()).Int64("size", s.Size()).Msg("stream opened")
	return s, nil
}

// OpenMany opens paths in parallel. Either every stream is returned, in
// the order of paths, or none is and the first error is.
func (c *Client) OpenMany(ctx context.Context, paths []string, verifyChecksum bool) ([]stream.Stream, error) {
	streams := make([]stream.Stream, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			s, err := c.Open(gctx, p, verifyChecksum)
			if err != nil {
				return err
			}
			streams[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, s := range streams {
			if s != nil {
				s.Close()
			}
		}
		return nil, err
	}
	return streams, nil
}

func (c *Client) Close() error {
	return errors.Join(c.states.Close(), c.dfs.Close())
}
