// Package miniotest runs an in-process object store that answers the
// GET and HEAD requests issued by the minio client for path-style URLs.
package miniotest

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

const Region = "us-east-1"

type Server struct {
	*httptest.Server
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewServer() *Server {
	s := &Server{objects: make(map[string][]byte)}
	s.Server = httptest.NewServer(s)
	return s
}

// Endpoint is the host:port to hand to the minio client.
func (s *Server) Endpoint() string {
	return strings.TrimPrefix(s.URL, "http://")
}

func (s *Server) Put(bucket, key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = data
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data, ok := s.objects[strings.TrimPrefix(r.URL.Path, "/")]
	s.mu.RUnlock()

	if !ok {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		if r.Method != http.MethodHead {
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
				`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
		}
		return
	}
	w.Header().Set("ETag", `"0123456789abcdef0123456789abcdef"`)
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeContent(w, r, "", time.Unix(1700000000, 0), bytes.NewReader(data))
}
