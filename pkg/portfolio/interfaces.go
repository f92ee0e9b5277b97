package portfolio

import (
	"context"
	"io"
)

// Source is a remote store of content entries.
type Source interface {
	// GetEntries returns the entries matching the query, in source order.
	GetEntries(ctx context.Context, query EntryQuery) ([]Entry, error)

	// Configured reports whether the source was given credentials. An
	// unconfigured source is never queried.
	Configured() bool
}

// AssetStore serves locally hosted media such as the mock bundle's images.
type AssetStore interface {
	// GetObjectMeta retrieves metadata for an asset
	GetObjectMeta(ctx context.Context, key string) (*AssetMeta, error)

	// Download opens the asset for reading
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetDownloadURL returns a direct URL for the asset, or ErrDirectAccess
	GetDownloadURL(ctx context.Context, key string) (string, error)
}
