package minio

import (
	"context"
	"io"
	"testing"

	"github.com/sjy-dv/smartstream/pkg/minio/miniotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) (*MinioAPI, *miniotest.Server) {
	srv := miniotest.NewServer()
	t.Cleanup(srv.Close)
	api, err := NewMinio(Options{Endpoint: srv.Endpoint(), Region: miniotest.Region})
	require.NoError(t, err)
	return api, srv
}

func TestOpenObject(t *testing.T) {
	api, srv := newTestAPI(t)
	srv.Put("warehouse", "data/a.txt", []byte("object store content"))

	obj, err := api.OpenObject(context.Background(), "warehouse", "data/a.txt")
	require.NoError(t, err)
	defer obj.Close()
	assert.Equal(t, int64(20), obj.Size())

	buf := make([]byte, 5)
	_, err = obj.ReadAt(buf, 7)
	require.NoError(t, err)
	assert.Equal(t, "store", string(buf))

	_, err = obj.Seek(13, io.SeekStart)
	require.NoError(t, err)
	rest, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "content", string(rest))
}

func TestOpenMissingObject(t *testing.T) {
	api, _ := newTestAPI(t)
	_, err := api.OpenObject(context.Background(), "warehouse", "nope")
	assert.Error(t, err)
}
