package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
	fsstorage "github.com/tendant/simple-portfolio/pkg/portfolio/storage/fs"
	memorystorage "github.com/tendant/simple-portfolio/pkg/portfolio/storage/memory"
	s3storage "github.com/tendant/simple-portfolio/pkg/portfolio/storage/s3"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, SourceContentful, cfg.Source.Type)
	assert.Equal(t, "master", cfg.Source.Contentful.Environment)
	assert.Equal(t, "file://public", cfg.Assets.URL)
}

func TestWithPort(t *testing.T) {
	cfg, err := Load(WithPort("9090"))
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)

	_, err = Load(WithPort(""))
	assert.Error(t, err)
}

func TestWithEnvironment(t *testing.T) {
	cfg, err := Load(WithEnvironment("production"))
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())

	_, err = Load(WithEnvironment(""))
	assert.Error(t, err)
}

func TestWithContentful(t *testing.T) {
	cfg, err := Load(
		WithPostgres("postgresql://localhost/portfolio", ""),
		WithContentful("space", "token"),
		WithContentfulEnvironment("staging", "preview.contentful.com"),
	)
	require.NoError(t, err)
	assert.Equal(t, SourceContentful, cfg.Source.Type)
	assert.Equal(t, ContentfulConfig{
		SpaceID:     "space",
		AccessToken: "token",
		Environment: "staging",
		Host:        "preview.contentful.com",
	}, cfg.Source.Contentful)
}

func TestWithPostgres(t *testing.T) {
	cfg, err := Load(WithPostgres("postgresql://localhost/portfolio", "cms"))
	require.NoError(t, err)
	assert.Equal(t, SourcePostgres, cfg.Source.Type)
	assert.Equal(t, "cms", cfg.Source.DBSchema)

	_, err = Load(WithPostgres("", ""))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{"unknown source", func(c *ServerConfig) { c.Source.Type = "wordpress" }, "content source"},
		{"postgres without url", func(c *ServerConfig) { c.Source.Type = SourcePostgres }, "database_url"},
		{"bad asset url", func(c *ServerConfig) { c.Assets.URL = "ftp://assets" }, "unsupported asset storage URL"},
		{"empty port", func(c *ServerConfig) { c.Port = "" }, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseAssetURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    assetSpec
		wantErr bool
	}{
		{raw: "memory://", want: assetSpec{Type: "memory"}},
		{raw: "file://public", want: assetSpec{Type: "fs", BaseDir: "public"}},
		{raw: "file:///srv/site/public", want: assetSpec{Type: "fs", BaseDir: "/srv/site/public"}},
		{raw: "s3://media", want: assetSpec{Type: "s3", Bucket: "media", Region: "us-east-1"}},
		{
			raw: "s3://media/public/?region=eu-west-1&endpoint=http://localhost:9000&path_style=true&presign=600",
			want: assetSpec{
				Type:            "s3",
				Bucket:          "media",
				Prefix:          "public/",
				Region:          "eu-west-1",
				Endpoint:        "http://localhost:9000",
				PathStyle:       true,
				PresignDuration: 600,
			},
		},
		{raw: "file://", wantErr: true},
		{raw: "s3://", wantErr: true},
		{raw: "s3://media?path_style=maybe", wantErr: true},
		{raw: "s3://media?presign=-1", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseAssetURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildAssetStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		cfg, err := Load(WithAssetStorage("memory://"))
		require.NoError(t, err)
		store, err := cfg.BuildAssetStore()
		require.NoError(t, err)
		assert.IsType(t, &memorystorage.Backend{}, store)
	})

	t.Run("fs", func(t *testing.T) {
		cfg, err := Load(WithAssetStorage("file://" + t.TempDir()))
		require.NoError(t, err)
		store, err := cfg.BuildAssetStore()
		require.NoError(t, err)
		assert.IsType(t, &fsstorage.Backend{}, store)
	})

	t.Run("fs missing directory", func(t *testing.T) {
		cfg, err := Load(WithAssetStorage("file://" + t.TempDir() + "/missing"))
		require.NoError(t, err)
		_, err = cfg.BuildAssetStore()
		assert.Error(t, err)
	})

	t.Run("s3", func(t *testing.T) {
		cfg, err := Load(
			WithAssetStorage("s3://media/public?endpoint=http://localhost:9000&path_style=true"),
			WithAssetCredentials("minioadmin", "minioadmin"),
		)
		require.NoError(t, err)
		store, err := cfg.BuildAssetStore()
		require.NoError(t, err)
		require.IsType(t, &s3storage.Backend{}, store)

		u, err := store.GetDownloadURL(context.Background(), "/images/a.jpg")
		require.NoError(t, err)
		assert.Contains(t, u, "http://localhost:9000/media/public/images/a.jpg?")
	})

	t.Run("invalid url option", func(t *testing.T) {
		_, err := Load(WithAssetStorage("gs://media"))
		assert.Error(t, err)
	})
}

func TestBuildProvider_UnconfiguredContentfulServesMock(t *testing.T) {
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg, err := Load(WithContentful("", ""))
	require.NoError(t, err)

	provider, err := cfg.BuildProvider(context.Background())
	require.NoError(t, err)
	assert.Equal(t, portfolio.MockBundle(), provider.FetchAllContent(context.Background()))
}

func TestBuildProvider_PostgresBadURL(t *testing.T) {
	cfg, err := Load(WithPostgres("postgres://user@localhost:notaport/portfolio", ""))
	require.NoError(t, err)
	_, err = cfg.BuildProvider(context.Background())
	assert.Error(t, err)
}

// unsetEnv removes key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
