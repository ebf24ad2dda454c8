package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cv-generator/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var (
	// ErrUnavailable means no document store is configured or reachable.
	ErrUnavailable = errors.New("document store unavailable")

	// ErrNotFound means no document matches the requested id.
	ErrNotFound = errors.New("document not found")
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// DocumentsRepo stores JSON documents grouped by collection.
type DocumentsRepo struct {
	db  DB
	now func() time.Time
}

// NewDocumentsRepo wraps pool. A nil pool yields a repo whose every
// operation fails with ErrUnavailable.
func NewDocumentsRepo(pool *pgxpool.Pool) *DocumentsRepo {
	if pool == nil {
		return &DocumentsRepo{now: time.Now}
	}
	return newDocumentsRepo(pool)
}

func newDocumentsRepo(db DB) *DocumentsRepo {
	return &DocumentsRepo{db: db, now: time.Now}
}

// Available reports whether a store is configured.
func (r *DocumentsRepo) Available() bool {
	return r != nil && r.db != nil
}

// Store inserts record into collection and returns the new document id.
func (r *DocumentsRepo) Store(ctx context.Context, collection string, record interface{}) (string, error) {
	if !r.Available() {
		return "", ErrUnavailable
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode %s document: %w", collection, err)
	}

	id := uuid.New()
	now := r.now().UTC()
	if _, err := r.db.Exec(ctx, `INSERT INTO documents (id, collection, data, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)`,
		id, collection, data, now, now); err != nil {
		return "", fmt.Errorf("insert %s document: %w", collection, err)
	}
	return id.String(), nil
}

// Get loads one document of collection by id.
func (r *DocumentsRepo) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	if !r.Available() {
		return nil, ErrUnavailable
	}
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	doc, err := scanDocument(r.db.QueryRow(ctx, `SELECT id::text, collection, data, created_at, updated_at
		FROM documents WHERE collection=$1 AND id=$2`, collection, docID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s document: %w", collection, err)
	}
	return doc, nil
}

// List returns the most recent documents of collection, newest first.
func (r *DocumentsRepo) List(ctx context.Context, collection string, limit int) ([]domain.Document, error) {
	if !r.Available() {
		return nil, ErrUnavailable
	}

	rows, err := r.db.Query(ctx, `SELECT id::text, collection, data, created_at, updated_at
		FROM documents WHERE collection=$1 ORDER BY created_at DESC LIMIT $2`, collection, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s documents: %w", collection, err)
	}
	defer rows.Close()

	out := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s document: %w", collection, err)
		}
		out = append(out, *doc)
	}
	return out, rows.Err()
}

// Collections returns up to limit collection names holding documents.
func (r *DocumentsRepo) Collections(ctx context.Context, limit int) ([]string, error) {
	if !r.Available() {
		return nil, ErrUnavailable
	}

	var raw []byte
	if err := r.db.QueryRow(ctx, `SELECT coalesce(json_agg(c.collection), '[]')
		FROM (SELECT DISTINCT collection FROM documents ORDER BY collection LIMIT $1) c`, limit).Scan(&raw); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("decode collections: %w", err)
	}
	return names, nil
}

// Ping checks the store connection.
func (r *DocumentsRepo) Ping(ctx context.Context) error {
	if !r.Available() {
		return ErrUnavailable
	}
	return r.db.Ping(ctx)
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var (
		doc domain.Document
		id  string
		raw []byte
	)
	if err := row.Scan(&id, &doc.Collection, &raw, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	doc.ID = parsed
	doc.Data = json.RawMessage(raw)
	return &doc, nil
}
