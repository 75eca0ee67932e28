package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

type MinioAPI struct {
	session *minio.Client
}

const defaultCreds string = "minioadmin"

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Secure    bool
}

func NewMinio(opts Options) (*MinioAPI, error) {
	access, secret := opts.AccessKey, opts.SecretKey
	if access == "" && secret == "" {
		access, secret = defaultCreds, defaultCreds
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinioAPI{
		session: client,
	}, nil
}

// OpenObject stats the object before returning it, so a missing object
// fails here and not on first read.
func (api *MinioAPI) OpenObject(ctx context.Context, bucketName, objectName string) (*Object, error) {
	obj, err := api.session.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, fmt.Errorf("stat [%s]-[%s]: %w", bucketName, objectName, err)
	}
	log.Debug().Msgf("opened [%s]-[%s] with Size (%d bytes)", bucketName, objectName, info.Size)
	return &Object{Object: obj, size: info.Size}, nil
}

// Object is a seekable, random-access view of one stored object.
type Object struct {
	*minio.Object
	size int64
}

func (o *Object) Size() int64 {
	return o.size
}
