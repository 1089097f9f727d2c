// Package storage keeps uploaded attachments in S3-compatible object storage.
package storage

import (
	"context"
	"io"
)

type Storage interface {
	Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) error
	// URL is the public address of an uploaded object.
	URL(key string) string
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string
}
