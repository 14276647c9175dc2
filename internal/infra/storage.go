package infra

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageConfig holds the S3-compatible blob store connection settings.
type StorageConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	PublicBase string
}

// Storage uploads signature and invoice images and resolves their public
// URLs. Buckets are public-read; the URL is deterministic from the public
// base, so no presigning is involved.
type Storage struct {
	cl         *minio.Client
	publicBase string
}

func NewStorage(cfg StorageConfig) (*Storage, error) {
	cl, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, publicBase: cfg.PublicBase}, nil
}

func (s *Storage) Subir(ctx context.Context, bucket, nombre string, datos []byte, contentType string) error {
	_, err := s.cl.PutObject(ctx, bucket, nombre, bytes.NewReader(datos), int64(len(datos)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *Storage) URLPublica(bucket, nombre string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBase, bucket, nombre)
}

// Ping verifies the blob store answers; used by the health endpoint.
func (s *Storage) Ping(ctx context.Context, bucket string) error {
	_, err := s.cl.BucketExists(ctx, bucket)
	return err
}
