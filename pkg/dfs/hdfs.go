package dfs

import (
	"fmt"
	"sync/atomic"

	"github.com/colinmarc/hdfs/v2"
)

// HDFS is a Client backed by a namenode connection.
type HDFS struct {
	client *hdfs.Client
	closed atomic.Bool
}

func NewHDFS(namenodes []string, user string) (*HDFS, error) {
	client, err := hdfs.NewClient(hdfs.ClientOptions{
		Addresses: namenodes,
		User:      user,
	})
	if err != nil {
		return nil, fmt.Errorf("connect namenodes %v: %w", namenodes, err)
	}
	return &HDFS{client: client}, nil
}

func (h *HDFS) CheckOpen() error {
	if h.closed.Load() || h.client == nil {
		return ErrClientClosed
	}
	return nil
}

func (h *HDFS) Open(name string) (File, error) {
	if err := h.CheckOpen(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrEmptyPath
	}
	r, err := h.client.Open(name)
	if err != nil {
		return nil, err
	}
	return &hdfsFile{FileReader: r}, nil
}

func (h *HDFS) Close() error {
	if h.closed.Swap(true) || h.client == nil {
		return nil
	}
	return h.client.Close()
}

type hdfsFile struct {
	*hdfs.FileReader
}

func (f *hdfsFile) Size() int64 {
	return f.Stat().Size()
}
