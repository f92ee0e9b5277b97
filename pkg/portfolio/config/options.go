package config

import (
	"fmt"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithSiteTitle sets the heading shown on the page
func WithSiteTitle(title string) Option {
	return func(c *ServerConfig) error {
		if title == "" {
			return fmt.Errorf("site title cannot be empty")
		}
		c.SiteTitle = title
		return nil
	}
}

// WithContentful selects Contentful as the content source. A missing
// credential is accepted and selects mock mode.
func WithContentful(spaceID, accessToken string) Option {
	return func(c *ServerConfig) error {
		c.Source.Type = SourceContentful
		c.Source.Contentful.SpaceID = spaceID
		c.Source.Contentful.AccessToken = accessToken
		return nil
	}
}

// WithContentfulEnvironment sets the Contentful environment and host.
// Empty values keep the current setting.
func WithContentfulEnvironment(environment, host string) Option {
	return func(c *ServerConfig) error {
		if environment != "" {
			c.Source.Contentful.Environment = environment
		}
		if host != "" {
			c.Source.Contentful.Host = host
		}
		return nil
	}
}

// WithPostgres selects the Postgres entry store as the content source
func WithPostgres(url, schema string) Option {
	return func(c *ServerConfig) error {
		if url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.Source.Type = SourcePostgres
		c.Source.DatabaseURL = url
		c.Source.DBSchema = schema
		return nil
	}
}

// WithAssetStorage sets the asset store URL
func WithAssetStorage(url string) Option {
	return func(c *ServerConfig) error {
		if _, err := parseAssetURL(url); err != nil {
			return err
		}
		c.Assets.URL = url
		return nil
	}
}

// WithAssetCredentials sets static S3 credentials for the asset store
func WithAssetCredentials(accessKeyID, secretAccessKey string) Option {
	return func(c *ServerConfig) error {
		c.Assets.AccessKeyID = accessKeyID
		c.Assets.SecretAccessKey = secretAccessKey
		return nil
	}
}

// WithAutoMigrate creates the Postgres entry tables when the provider is built
func WithAutoMigrate(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.Source.AutoMigrate = enabled
		return nil
	}
}
