// Package config resolves process configuration from flags with environment
// fallback.
package config

import (
	"errors"
	"flag"
	"os"
)

// Config carries everything main needs to wire the process.
type Config struct {
	Addr         string
	DatabaseType string // "sqlite" or "postgres"
	DatabaseURL  string // postgres connection string
	SQLitePath   string // sqlite database file

	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
}

// Parse validates flags and fills in environment defaults. The SQLite path
// depends on APP_ENV: development (the default) uses dev/db.sqlite, any
// other environment uses data/db.sqlite.
func Parse(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("weightshare", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", "", "Listen address")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "PostgreSQL connection string")
	fs.StringVar(&cfg.SQLitePath, "f", "", "SQLite database file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Addr == "" {
		cfg.Addr = os.Getenv("ADDR")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, errors.New("postgres requires a connection string (use -d or DATABASE_URL)")
	}

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	}
	if cfg.SQLitePath == "" {
		if appEnv(os.Getenv("APP_ENV")) == "development" {
			cfg.SQLitePath = "dev/db.sqlite"
		} else {
			cfg.SQLitePath = "data/db.sqlite"
		}
	}

	cfg.OIDCIssuer = os.Getenv("OIDC_ISSUER")
	cfg.OIDCClientID = os.Getenv("OIDC_CLIENT_ID")
	cfg.OIDCClientSecret = os.Getenv("OIDC_CLIENT_SECRET")
	cfg.OIDCRedirectURL = os.Getenv("OIDC_REDIRECT_URL")

	return cfg, nil
}

func appEnv(v string) string {
	if v == "" {
		return "development"
	}
	return v
}
