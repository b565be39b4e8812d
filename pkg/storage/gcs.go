package storage

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type GCS struct {
	client *storage.Client
	bucket *storage.BucketHandle
	expiry time.Duration
}

func NewGCS(ctx context.Context, bucketName string, credentialsJSON string, expiry time.Duration) (*GCS, error) {
	if bucketName == "" || credentialsJSON == "" {
		return nil, ErrNotConfigured
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, err
	}

	return &GCS{
		client: client,
		bucket: client.Bucket(bucketName),
		expiry: expiry,
	}, nil
}

func (g *GCS) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	writer := g.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	log.Debug().Str("bucket", g.bucket.BucketName()).Str("key", key).Int("size", len(data)).Msg("Uploaded announcement to GCS")

	return g.bucket.SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(g.expiry),
	})
}

func (g *GCS) Close() error {
	return g.client.Close()
}
