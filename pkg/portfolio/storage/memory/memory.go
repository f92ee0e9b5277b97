package memory

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"sync"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

type object struct {
	data        []byte
	contentType string
	etag        string
}

// Backend is an in-memory implementation of the portfolio.AssetStore interface
type Backend struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New creates a new in-memory asset store
func New() *Backend {
	return &Backend{
		objects: make(map[string]object),
	}
}

// Put stores data under key. An empty contentType defaults to
// application/octet-stream.
func (b *Backend) Put(key string, data []byte, contentType string) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	sum := sha1.Sum(data)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = object{
		data:        append([]byte(nil), data...),
		contentType: contentType,
		etag:        hex.EncodeToString(sum[:]),
	}
}

// GetObjectMeta retrieves metadata for an asset in memory
func (b *Backend) GetObjectMeta(ctx context.Context, key string) (*portfolio.AssetMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, exists := b.objects[key]
	if !exists {
		return nil, portfolio.ErrAssetNotFound
	}

	return &portfolio.AssetMeta{
		Key:         key,
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		ETag:        obj.etag,
	}, nil
}

// GetDownloadURL is not supported; memory assets are always streamed
func (b *Backend) GetDownloadURL(ctx context.Context, key string) (string, error) {
	return "", portfolio.ErrDirectAccess
}

// Download returns a reader over the stored bytes
func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, exists := b.objects[key]
	if !exists {
		return nil, portfolio.ErrAssetNotFound
	}

	return io.NopCloser(bytes.NewReader(obj.data)), nil
}
