package backends

import (
	"context"

	"github.com/sjy-dv/smartstream/filestate"
	"github.com/sjy-dv/smartstream/pkg/dfs"
	"github.com/sjy-dv/smartstream/stream"
)

// ObjectStream reads a file moved to an object store.
type ObjectStream struct {
	base
	Bucket string
	Key    string
}

// NewS3 serves S3 files from store. The dfs client is only checked by the
// selector; reads never touch it.
func NewS3(store ObjectStore) stream.OpenFunc {
	return func(_ dfs.Client, path string, verifyChecksum bool, state *filestate.FileState) (stream.Stream, error) {
		if store == nil {
			return nil, ErrNoObjectStore
		}
		if err := state.Validate(); err != nil {
			return nil, err
		}
		key := state.Object.ObjectKey(path)
		obj, err := store.OpenObject(context.Background(), state.Object.Bucket, key)
		if err != nil {
			return nil, err
		}
		return &ObjectStream{
			base:   newBase(obj, verifyChecksum, state),
			Bucket: state.Object.Bucket,
			Key:    key,
		}, nil
	}
}
