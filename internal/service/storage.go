package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"

	"ruang-foto/internal/config"
)

// ObjectStorage is the durable-store seam of the ingestion pipeline: put,
// compensating remove, and public URL derivation for stored keys.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}

type minioStorage struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOStorage(client *minio.Client, cfg *config.Config) ObjectStorage {
	return &minioStorage{client: client, cfg: cfg}
}

func (s *minioStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.cfg.MinIOBucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *minioStorage) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.cfg.MinIOBucket, key, minio.RemoveObjectOptions{})
}

func (s *minioStorage) PublicURL(key string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(key))
}
