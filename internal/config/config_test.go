package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "DATABASE_URL", "DATABASE_NAME", "PDF_ENGINE", "PDF_TIMEOUT", "ALLOWED_CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, EngineChromedp, cfg.PDF.Engine)
	assert.Equal(t, 60*time.Second, cfg.PDF.Timeout)
	assert.Empty(t, cfg.Database.URL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_URL", "postgres://cv:cv@localhost:5432/cv?sslmode=disable")
	t.Setenv("DATABASE_NAME", "makemehired")
	t.Setenv("PDF_ENGINE", "Rod")
	t.Setenv("PDF_TIMEOUT", "15s")
	t.Setenv("ALLOWED_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "makemehired", cfg.Database.Name)
	assert.Equal(t, EngineRod, cfg.PDF.Engine)
	assert.Equal(t, 15*time.Second, cfg.PDF.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8000", BodyLimit: 1024},
			Database: DatabaseConfig{MaxConns: 1},
			PDF:      PDFConfig{Engine: EngineChromedp, Timeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "non numeric port", mutate: func(c *Config) { c.Server.Port = "http" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = "70000" }, wantErr: true},
		{name: "unknown engine", mutate: func(c *Config) { c.PDF.Engine = "wkhtmltopdf" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.PDF.Timeout = 0 }, wantErr: true},
		{name: "zero body limit", mutate: func(c *Config) { c.Server.BodyLimit = 0 }, wantErr: true},
		{name: "zero max conns", mutate: func(c *Config) { c.Database.MaxConns = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
