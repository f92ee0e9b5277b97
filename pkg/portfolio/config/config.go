package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-portfolio/pkg/portfolio"
	"github.com/tendant/simple-portfolio/pkg/portfolio/source/contentful"
	"github.com/tendant/simple-portfolio/pkg/portfolio/source/postgres"
	fsstorage "github.com/tendant/simple-portfolio/pkg/portfolio/storage/fs"
	memorystorage "github.com/tendant/simple-portfolio/pkg/portfolio/storage/memory"
	s3storage "github.com/tendant/simple-portfolio/pkg/portfolio/storage/s3"
)

// Content source types
const (
	SourceContentful = "contentful"
	SourcePostgres   = "postgres"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:        "8080",
		Environment: "development",
		SiteTitle:   "Richard Quintero",
		Source: SourceConfig{
			Type: SourceContentful,
			Contentful: ContentfulConfig{
				Environment: contentful.DefaultEnvironment,
				Host:        contentful.DefaultHost,
			},
		},
		Assets: AssetConfig{
			URL: "file://public",
		},
	}
}

// ServerConfig represents server configuration for the portfolio site
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing
	SiteTitle   string

	Source SourceConfig
	Assets AssetConfig
}

// SourceConfig selects and configures the content source
type SourceConfig struct {
	Type       string // "contentful", "postgres"
	Contentful ContentfulConfig

	DatabaseURL string
	DBSchema    string // Postgres schema for search_path (optional)
	AutoMigrate bool   // create the entry tables on startup
}

// ContentfulConfig holds Content Delivery API settings. A missing space ID
// or access token is valid and puts the site into mock mode.
type ContentfulConfig struct {
	SpaceID     string
	AccessToken string
	Environment string
	Host        string
}

// AssetConfig configures the store behind /images and /videos
type AssetConfig struct {
	URL             string // memory://, file://dir or s3://bucket/prefix?region=..
	AccessKeyID     string
	SecretAccessKey string
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.Source.Type {
	case SourceContentful:
	case SourcePostgres:
		if c.Source.DatabaseURL == "" {
			return errors.New("database_url is required when using postgres")
		}
	default:
		return fmt.Errorf("content source must be '%s' or '%s', got: %s", SourceContentful, SourcePostgres, c.Source.Type)
	}

	if _, err := parseAssetURL(c.Assets.URL); err != nil {
		return err
	}

	return nil
}

// IsDevelopment reports whether the server runs in the development environment
func (c *ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// BuildProvider creates the content Provider from the configuration. A
// Contentful source missing either credential still builds; the provider
// then serves mock content.
func (c *ServerConfig) BuildProvider(ctx context.Context) (portfolio.Provider, error) {
	source, err := c.buildSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build content source: %w", err)
	}

	return portfolio.New(
		portfolio.WithSource(source),
		portfolio.WithLogger(slog.Default().With("source", c.Source.Type)),
	)
}

func (c *ServerConfig) buildSource(ctx context.Context) (portfolio.Source, error) {
	switch c.Source.Type {
	case SourceContentful:
		cf := c.Source.Contentful
		return contentful.New(contentful.Config{
			SpaceID:     cf.SpaceID,
			AccessToken: cf.AccessToken,
			Environment: cf.Environment,
			Host:        cf.Host,
		}), nil
	case SourcePostgres:
		pool, err := newPool(ctx, c.Source.DatabaseURL, c.Source.DBSchema)
		if err != nil {
			return nil, err
		}
		source := postgres.NewWithPool(pool)
		if c.Source.AutoMigrate {
			if err := source.EnsureSchema(ctx); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return source, nil
	default:
		return nil, fmt.Errorf("unsupported content source: %s", c.Source.Type)
	}
}

func newPool(ctx context.Context, databaseURL, schema string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("database_url is required for postgres")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", pgx.Identifier{schema}.Sanitize()))
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// PingPostgres verifies connectivity to Postgres with the configured schema.
func PingPostgres(ctx context.Context, databaseURL, schema string) error {
	pool, err := newPool(ctx, databaseURL, schema)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// BuildAssetStore creates the asset store from Assets.URL
func (c *ServerConfig) BuildAssetStore() (portfolio.AssetStore, error) {
	spec, err := parseAssetURL(c.Assets.URL)
	if err != nil {
		return nil, err
	}

	switch spec.Type {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: spec.BaseDir})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:          spec.Region,
			Bucket:          spec.Bucket,
			Prefix:          spec.Prefix,
			AccessKeyID:     c.Assets.AccessKeyID,
			SecretAccessKey: c.Assets.SecretAccessKey,
			Endpoint:        spec.Endpoint,
			UsePathStyle:    spec.PathStyle,
			PresignDuration: spec.PresignDuration,
		})
	default:
		return nil, fmt.Errorf("unsupported asset storage type: %s", spec.Type)
	}
}
