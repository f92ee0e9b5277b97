package testutil

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
	"github.com/tendant/simple-portfolio/pkg/portfolio/api"
	memorystorage "github.com/tendant/simple-portfolio/pkg/portfolio/storage/memory"
)

// QuietLogger discards everything
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SeedMockAssets stores placeholder bytes under every path the mock bundle
// references, so the mock page renders without a public directory.
func SeedMockAssets(store *memorystorage.Backend) {
	bundle := portfolio.MockBundle()
	put := func(key string) {
		store.Put(key, []byte("placeholder:"+key), mime.TypeByExtension(path.Ext(key)))
	}
	for _, p := range bundle.PhotoProjects {
		for _, src := range p.Images {
			put(src)
		}
	}
	for _, v := range bundle.VideoProjects {
		put(v.Src)
		put(v.Poster)
	}
}

// SetupTestServer serves the full router over source and store. A nil
// source serves the mock bundle.
func SetupTestServer(t *testing.T, source portfolio.Source, store portfolio.AssetStore) *httptest.Server {
	t.Helper()

	opts := []portfolio.Option{portfolio.WithLogger(QuietLogger())}
	if source != nil {
		opts = append(opts, portfolio.WithSource(source))
	}
	provider, err := portfolio.New(opts...)
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(provider, store))
	t.Cleanup(srv.Close)
	return srv
}

// GetJSON fetches url and decodes the JSON body into v
func GetJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, url)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
