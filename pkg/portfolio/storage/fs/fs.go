package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

// Backend serves assets from a directory tree, typically the site's public
// directory. It implements portfolio.AssetStore.
type Backend struct {
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Directory holding images/ and videos/
}

// New creates a new filesystem asset store. The base directory must exist.
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	abs, err := filepath.Abs(config.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat base directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base directory %s is not a directory", abs)
	}

	return &Backend{baseDir: abs}, nil
}

// resolve maps a key to a path inside baseDir, rejecting traversal.
func (b *Backend) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimPrefix(key, "/"))
	path := filepath.Join(b.baseDir, filepath.FromSlash(clean))
	if path != b.baseDir && !strings.HasPrefix(path, b.baseDir+string(filepath.Separator)) {
		return "", portfolio.ErrAssetNotFound
	}
	return path, nil
}

// GetObjectMeta retrieves metadata for an asset on disk
func (b *Backend) GetObjectMeta(ctx context.Context, key string) (*portfolio.AssetMeta, error) {
	path, err := b.resolve(key)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, portfolio.ErrAssetNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if info.IsDir() {
		return nil, portfolio.ErrAssetNotFound
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
		if file, err := os.Open(path); err == nil {
			defer file.Close()
			buffer := make([]byte, 512)
			if n, err := file.Read(buffer); err == nil {
				contentType = http.DetectContentType(buffer[:n])
			}
		}
	}

	return &portfolio.AssetMeta{
		Key:         key,
		Size:        info.Size(),
		ContentType: contentType,
		ETag:        fmt.Sprintf("%x-%x", info.ModTime().UnixNano(), info.Size()),
	}, nil
}

// GetDownloadURL is not supported; files are streamed by the server
func (b *Backend) GetDownloadURL(ctx context.Context, key string) (string, error) {
	return "", portfolio.ErrDirectAccess
}

// Download opens the file for reading
func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := b.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, portfolio.ErrAssetNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}
