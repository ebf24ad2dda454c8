package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"cv-generator/internal/config"
)

// ErrPersistenceDisabled is returned by NewDocumentsPool when no DATABASE_URL is set.
var ErrPersistenceDisabled = errors.New("persistence disabled: DATABASE_URL not set")

// NewDocumentsPool connects to the document store. DATABASE_NAME, when set,
// overrides the database named in the connection string.
func NewDocumentsPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, ErrPersistenceDisabled
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.Name != "" {
		poolCfg.ConnConfig.Database = cfg.Name
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping document store: %w", err)
	}
	return pool, nil
}
