package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported PDF engines.
const (
	EngineChromedp = "chromedp"
	EngineRod      = "rod"
)

// Config holds all application configuration. It is read once at startup.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	PDF      PDFConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port           string
	AppEnv         string
	AllowedOrigins []string
	BodyLimit      int
}

// DatabaseConfig describes the optional document store. An empty URL
// disables persistence.
type DatabaseConfig struct {
	URL            string
	Name           string
	MaxConns       int32
	MigrateOnStart bool
}

type PDFConfig struct {
	Engine     string
	ChromePath string
	Timeout    time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8000")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "*")
	v.SetDefault("BODY_LIMIT_BYTES", 1<<20)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_NAME", "")
	v.SetDefault("DATABASE_MAX_CONNS", 4)
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("PDF_ENGINE", EngineChromedp)
	v.SetDefault("CHROME_PATH", "")
	v.SetDefault("PDF_TIMEOUT", "60s")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
			BodyLimit:      v.GetInt("BODY_LIMIT_BYTES"),
		},
		Database: DatabaseConfig{
			URL:            v.GetString("DATABASE_URL"),
			Name:           v.GetString("DATABASE_NAME"),
			MaxConns:       v.GetInt32("DATABASE_MAX_CONNS"),
			MigrateOnStart: v.GetBool("MIGRATE_ON_START"),
		},
		PDF: PDFConfig{
			Engine:     strings.ToLower(strings.TrimSpace(v.GetString("PDF_ENGINE"))),
			ChromePath: v.GetString("CHROME_PATH"),
			Timeout:    v.GetDuration("PDF_TIMEOUT"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Server.Port)
	}
	if c.Server.BodyLimit <= 0 {
		return errors.New("BODY_LIMIT_BYTES must be positive")
	}
	switch c.PDF.Engine {
	case EngineChromedp, EngineRod:
	default:
		return fmt.Errorf("unsupported PDF_ENGINE %q (want %s or %s)", c.PDF.Engine, EngineChromedp, EngineRod)
	}
	if c.PDF.Timeout <= 0 {
		return errors.New("PDF_TIMEOUT must be positive")
	}
	if c.Database.MaxConns <= 0 {
		return errors.New("DATABASE_MAX_CONNS must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
