package smartclient

import (
	"github.com/rs/zerolog/log"
	"github.com/sjy-dv/smartstream/config"
	"github.com/sjy-dv/smartstream/pkg/dfs"
	"github.com/sjy-dv/smartstream/pkg/minio"
	"github.com/sjy-dv/smartstream/statestore"
	"github.com/sjy-dv/smartstream/stream"
	"github.com/sjy-dv/smartstream/stream/backends"
)

// NewFromConfig connects everything cfg describes.
func NewFromConfig(cfg *config.ConfigMap) (*Client, error) {
	var (
		client dfs.Client
		err    error
	)
	switch cfg.DFS.Kind {
	case dfs.HDFSKind:
		client, err = dfs.NewHDFS(cfg.DFS.NameNodes, cfg.DFS.User)
	default:
		client, err = dfs.NewLocal(cfg.DFS.Root)
	}
	if err != nil {
		return nil, err
	}

	states, err := statestore.Open(cfg.StateStore.Kind, cfg.StateStore.Path)
	if err != nil {
		client.Close()
		return nil, err
	}
	if cfg.StateStore.CacheSize > 0 {
		cached, err := statestore.NewCached(states, cfg.StateStore.CacheSize)
		if err != nil {
			states.Close()
			client.Close()
			return nil, err
		}
		states = cached
	}

	opts := backends.Options{ChunkCacheSize: cfg.Compression.ChunkCacheSize}
	if cfg.S3.Enabled {
		api, err := minio.NewMinio(minio.Options{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Region:    cfg.S3.Region,
			Secure:    cfg.S3.Secure,
		})
		if err != nil {
			states.Close()
			client.Close()
			return nil, err
		}
		opts.ObjectStore = api
	}

	log.Info().Str("dfs", cfg.DFS.Kind).Str("statestore", cfg.StateStore.Kind).
		Bool("s3", cfg.S3.Enabled).Msg("smart client ready")
	return New(client, states, stream.NewSelector(backends.Table(opts))), nil
}
