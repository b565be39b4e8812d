// Package storage uploads announcement audio and hands out time limited
// download URLs.
package storage

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// Store writes an object and returns a URL it can be fetched from.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
