package migration

import (
	"context"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"

	"cv-generator/pkg/logger"
)

// Execer is satisfied by *pgxpool.Pool.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, db Execer) error
}

// Migrations lists the schema steps in the order they run. Every step is
// idempotent, so the list runs in full on each start.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_documents", Up: createDocuments},
		{Name: "index_documents_collection_created_at", Up: indexDocumentsCollection},
	}
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, db Execer) error {
	logger.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, db); err != nil {
			logger.Error("Migration failed", zap.String("name", m.Name), zap.Error(err))
			return err
		}
		logger.Info("Migration completed", zap.String("name", m.Name))
	}

	logger.Info("All migrations completed successfully")
	return nil
}

func createDocuments(ctx context.Context, db Execer) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			id UUID PRIMARY KEY,
			collection TEXT NOT NULL,
			data JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func indexDocumentsCollection(ctx context.Context, db Execer) error {
	_, err := db.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS documents_collection_created_at_idx
		ON documents (collection, created_at DESC);
	`)
	return err
}
