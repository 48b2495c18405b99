// Package config loads the techmentorai runtime configuration from an
// optional file and TECHMENTORAI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jassmeen122/techmentorai/logger"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TECHMENTORAI_MONGO_URI.
const EnvPrefix = "TECHMENTORAI"

// Driver names accepted by Config.Driver.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver        string         `mapstructure:"driver"`
	Mongo         MongoConfig    `mapstructure:"mongo"`
	Postgres      PostgresConfig `mapstructure:"postgres"`
	Log           logger.Config  `mapstructure:"log"`
	StrictSchemas bool           `mapstructure:"strict_schemas"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// Load reads file (any format viper understands, optional when empty) and
// then the environment, which takes precedence.
//
// Example:
//
//	cfg, err := config.Load("")
//	// TECHMENTORAI_DRIVER=postgres TECHMENTORAI_POSTGRES_URL=postgres://...
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetDefault("driver", DriverMemory)
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "")
	v.SetDefault("postgres.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("strict_schemas", false)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected driver has what it needs to connect.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMemory:
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("config: mongo driver needs mongo.uri and mongo.database")
		}
	case DriverPostgres:
		if c.Postgres.URL == "" {
			return errors.New("config: postgres driver needs postgres.url")
		}
	default:
		return fmt.Errorf("config: unknown driver %q", c.Driver)
	}
	return nil
}
