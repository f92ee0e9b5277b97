package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

// AssetHandler serves the local media referenced by the mock bundle
type AssetHandler struct {
	store portfolio.AssetStore
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(store portfolio.AssetStore) *AssetHandler {
	return &AssetHandler{store: store}
}

// ServeAsset redirects to the store's direct URL when it has one and
// streams the object otherwise. The request path is used as the key.
func (h *AssetHandler) ServeAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := r.URL.Path

	if u, err := h.store.GetDownloadURL(ctx, key); err == nil {
		http.Redirect(w, r, u, http.StatusFound)
		return
	} else if !errors.Is(err, portfolio.ErrDirectAccess) {
		slog.Error("Failed to get asset URL", "key", key, "err", err)
		http.Error(w, "Failed to get asset", http.StatusInternalServerError)
		return
	}

	meta, err := h.store.GetObjectMeta(ctx, key)
	if err != nil {
		h.handleError(w, r, key, err)
		return
	}

	if meta.ETag != "" {
		etag := strconv.Quote(meta.ETag)
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	body, err := h.store.Download(ctx, key)
	if err != nil {
		h.handleError(w, r, key, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, body); err != nil {
		slog.Warn("Asset stream interrupted", "key", key, "err", err)
	}
}

func (h *AssetHandler) handleError(w http.ResponseWriter, r *http.Request, key string, err error) {
	if errors.Is(err, portfolio.ErrAssetNotFound) {
		http.NotFound(w, r)
		return
	}
	slog.Error("Failed to serve asset", "key", key, "err", err)
	http.Error(w, "Failed to get asset", http.StatusInternalServerError)
}

// Mount registers the asset routes on r
func (h *AssetHandler) Mount(r chi.Router) {
	for _, prefix := range []string{"/images/*", "/videos/*"} {
		r.Get(prefix, h.ServeAsset)
		r.Head(prefix, h.ServeAsset)
	}
}
