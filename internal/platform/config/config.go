// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Resolver) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Storage Drivers

const (
	// StoreDriverPostgres persists documents in PostgreSQL JSONB columns.
	StoreDriverPostgres = "postgres"

	// StoreDriverMemory keeps documents in process memory (local runs only).
	StoreDriverMemory = "memory"
)

var languageCodeRegex = regexp.MustCompile(`^[a-z]{2}$`)

// # Configuration Schema

// Config holds all runtime configuration for the Grimoire API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the document store backend.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// Document Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL"`

	// LanguageCacheTTL bounds how long the distinct language set of a collection is cached.
	LanguageCacheTTL time.Duration `env:"LANGUAGE_CACHE_TTL" envDefault:"5m"`

	// Token verification (tokens are issued by the identity service)
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"grimoire.app"`

	// DefaultLanguage is preferred by the language resolver when a request names none.
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	if !languageCodeRegex.MatchString(c.DefaultLanguage) {
		return fmt.Errorf("config: DEFAULT_LANGUAGE %q must be a 2-letter lowercase code", c.DefaultLanguage)
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres store")
		}
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required for the postgres store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
