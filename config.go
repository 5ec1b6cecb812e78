// config.go environment-driven configuration
package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is parsed from the environment (after godotenv loads any .env file).
type Config struct {
	Addr         string `env:"ADDR" envDefault:":8081"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"portfolio.db"`

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	JWTSecret     string `env:"JWT_SECRET"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Site-wide branding surfaced to clients; never mutated after startup.
	SiteHeader     string `env:"SITE_HEADER" envDefault:"Portfolio Admin"`
	SiteTitle      string `env:"SITE_TITLE" envDefault:"Portfolio Admin"`
	SiteIndexTitle string `env:"SITE_INDEX_TITLE" envDefault:"Welcome to Your Portfolio Admin Panel"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
