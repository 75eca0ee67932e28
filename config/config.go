package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sjy-dv/smartstream/pkg/dfs"
	"github.com/sjy-dv/smartstream/statestore"
	"gopkg.in/yaml.v3"
)

var ConfigPathFlag = flag.String("config", "", "Path of the smartstream yaml config")
var VerifyChecksumFlag = flag.Bool("verify", false, "Verify content checksums while reading")
var DataRootDir = filepath.Join(os.TempDir(), "smartstream")

type ConfigMap struct {
	DFS         DFS         `yaml:"dfs"`
	StateStore  StateStore  `yaml:"statestore"`
	S3          S3          `yaml:"s3"`
	Compression Compression `yaml:"compression"`
	Log         Log         `yaml:"log"`
}

type DFS struct {
	// local or hdfs
	Kind      string   `yaml:"kind"`
	Root      string   `yaml:"root"`
	NameNodes []string `yaml:"namenodes"`
	User      string   `yaml:"user"`
}

type StateStore struct {
	// bbolt, badger or memory
	Kind      string `yaml:"kind"`
	Path      string `yaml:"path"`
	CacheSize int    `yaml:"cache_size"`
}

type S3 struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	Secure    bool   `yaml:"secure"`
}

type Compression struct {
	ChunkCacheSize int `yaml:"chunk_cache_size"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func Default() *ConfigMap {
	return &ConfigMap{
		DFS: DFS{
			Kind: dfs.LocalKind,
			Root: filepath.Join(DataRootDir, "dfs"),
		},
		StateStore: StateStore{
			Kind:      statestore.BoltKind,
			Path:      filepath.Join(DataRootDir, "state"),
			CacheSize: 4096,
		},
		S3: S3{
			Region: "us-east-1",
		},
		Compression: Compression{
			ChunkCacheSize: 16,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*ConfigMap, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ConfigMap) Validate() error {
	switch c.DFS.Kind {
	case dfs.LocalKind:
		if c.DFS.Root == "" {
			return errors.New("config: dfs.root is required for the local dfs")
		}
	case dfs.HDFSKind:
		if len(c.DFS.NameNodes) == 0 {
			return errors.New("config: dfs.namenodes is required for hdfs")
		}
	default:
		return fmt.Errorf("config: invalid dfs.kind '%s' (must be 'local' or 'hdfs')", c.DFS.Kind)
	}

	switch c.StateStore.Kind {
	case statestore.BoltKind, statestore.BadgerKind:
		if c.StateStore.Path == "" {
			return fmt.Errorf("config: statestore.path is required for %s", c.StateStore.Kind)
		}
	case statestore.MemoryKind:
	default:
		return fmt.Errorf("config: invalid statestore.kind '%s'", c.StateStore.Kind)
	}
	if c.StateStore.CacheSize < 0 {
		return errors.New("config: statestore.cache_size cannot be negative")
	}

	if c.S3.Enabled && c.S3.Endpoint == "" {
		return errors.New("config: s3.endpoint is required when s3 is enabled")
	}
	if c.Compression.ChunkCacheSize < 0 {
		return errors.New("config: compression.chunk_cache_size cannot be negative")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// ApplyLogging configures the global logger.
func (c *ConfigMap) ApplyLogging() {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
