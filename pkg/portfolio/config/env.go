package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig is the environment variable mapping read by WithEnv
type envConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	SiteTitle   string `env:"SITE_TITLE" env-default:"Richard Quintero"`

	ContentSource string `env:"CONTENT_SOURCE" env-default:"contentful"`

	ContentfulSpaceID     string `env:"CONTENTFUL_SPACE_ID"`
	ContentfulAccessToken string `env:"CONTENTFUL_ACCESS_TOKEN"`
	ContentfulEnvironment string `env:"CONTENTFUL_ENVIRONMENT" env-default:"master"`
	ContentfulHost        string `env:"CONTENTFUL_HOST" env-default:"cdn.contentful.com"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBSchema    string `env:"CONTENT_DB_SCHEMA"`
	AutoMigrate bool   `env:"CONTENT_DB_AUTO_MIGRATE" env-default:"false"`

	AssetStorageURL    string `env:"ASSET_STORAGE_URL" env-default:"file://public"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// WithEnv reads the configuration from environment variables. Unset
// variables take their documented defaults, so WithEnv replaces settings
// made by earlier options.
//
//	PORT, ENVIRONMENT, SITE_TITLE
//	CONTENT_SOURCE           contentful (default) or postgres
//	CONTENTFUL_SPACE_ID      either credential empty selects mock content
//	CONTENTFUL_ACCESS_TOKEN
//	CONTENTFUL_ENVIRONMENT   default master
//	CONTENTFUL_HOST          default cdn.contentful.com
//	DATABASE_URL             required for postgres
//	CONTENT_DB_SCHEMA        optional search_path
//	CONTENT_DB_AUTO_MIGRATE  create the entry tables on startup
//	ASSET_STORAGE_URL        memory://, file://dir (default file://public) or s3://bucket
//	AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var env envConfig
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		c.Port = env.Port
		c.Environment = env.Environment
		c.SiteTitle = env.SiteTitle

		c.Source = SourceConfig{
			Type: env.ContentSource,
			Contentful: ContentfulConfig{
				SpaceID:     env.ContentfulSpaceID,
				AccessToken: env.ContentfulAccessToken,
				Environment: env.ContentfulEnvironment,
				Host:        env.ContentfulHost,
			},
			DatabaseURL: env.DatabaseURL,
			DBSchema:    env.DBSchema,
			AutoMigrate: env.AutoMigrate,
		}

		c.Assets = AssetConfig{
			URL:             env.AssetStorageURL,
			AccessKeyID:     env.AWSAccessKeyID,
			SecretAccessKey: env.AWSSecretAccessKey,
		}
		return nil
	}
}
