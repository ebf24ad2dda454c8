package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	repo "cv-generator/internal/adapter/repository"
	"cv-generator/internal/model"
	"cv-generator/pkg/logger"
	"cv-generator/pkg/metrics"

	"go.uber.org/zap"
)

// Converter turns rendered HTML into PDF bytes.
type Converter interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// DocumentStore persists records and returns their identifier.
type DocumentStore interface {
	Store(ctx context.Context, collection string, record interface{}) (string, error)
}

// ErrNoStore is recorded in a PersistResult when no store was wired.
var ErrNoStore = errors.New("no document store configured")

// PersistResult is the outcome of the best-effort persistence step. A failed
// persist never fails the generation.
type PersistResult struct {
	ID  string
	Err error
}

// Stored reports whether the profile was written.
func (r PersistResult) Stored() bool {
	return r.Err == nil && r.ID != ""
}

// IDOrNil returns the stored id, or nil when persistence failed.
func (r PersistResult) IDOrNil() *string {
	if !r.Stored() {
		return nil
	}
	id := r.ID
	return &id
}

// GenerateResult is what one generation hands back to the caller.
type GenerateResult struct {
	ID        *string `json:"id"`
	Filename  string  `json:"filename"`
	HTML      string  `json:"html"`
	PDFBase64 string  `json:"pdf_base64"`
}

// defaultPersistTimeout bounds a single store write so an unreachable
// database degrades to a missing id instead of stalling the request.
const defaultPersistTimeout = 5 * time.Second

type Processor struct {
	converter      Converter
	store          DocumentStore
	persistTimeout time.Duration
}

// NewProcessor wires the pipeline. store may be nil, in which case profiles
// are never persisted.
func NewProcessor(c Converter, s DocumentStore) *Processor {
	return &Processor{converter: c, store: s, persistTimeout: defaultPersistTimeout}
}

// Generate validates a raw JSON submission and runs the full pipeline. A
// *model.ValidationError is returned before any other work happens.
func (p *Processor) Generate(ctx context.Context, raw []byte) (*GenerateResult, error) {
	profile, err := model.ParseProfile(raw)
	if err != nil {
		metrics.CVGenerations.WithLabelValues("invalid").Inc()
		return nil, err
	}
	return p.GenerateProfile(ctx, profile)
}

// GenerateProfile runs persist, render and convert for an already decoded profile.
func (p *Processor) GenerateProfile(ctx context.Context, profile *model.CVProfile) (*GenerateResult, error) {
	if err := profile.Validate(); err != nil {
		metrics.CVGenerations.WithLabelValues("invalid").Inc()
		return nil, err
	}
	profile.Normalize()

	persisted := p.persist(ctx, profile)

	html, err := RenderHTML(profile)
	if err != nil {
		metrics.CVGenerations.WithLabelValues("error").Inc()
		return nil, err
	}

	pdf, err := p.converter.RenderHTMLToPDF(ctx, html)
	if err != nil {
		metrics.CVGenerations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("convert cv: %w", err)
	}

	res := &GenerateResult{
		ID:        persisted.IDOrNil(),
		Filename:  BuildFilename(profile.FullName, profile.JobTitleTarget),
		HTML:      html,
		PDFBase64: base64.StdEncoding.EncodeToString(pdf),
	}

	metrics.CVGenerations.WithLabelValues("success").Inc()
	logger.Info("CV generated",
		zap.Bool("stored", persisted.Stored()),
		zap.Int("html_bytes", len(html)),
		zap.Int("pdf_bytes", len(pdf)),
		zap.String("template", profile.Template),
	)
	return res, nil
}

func (p *Processor) persist(ctx context.Context, profile *model.CVProfile) PersistResult {
	if p.store == nil {
		metrics.CVPersistence.WithLabelValues("skipped").Inc()
		return PersistResult{Err: ErrNoStore}
	}

	ctx, cancel := context.WithTimeout(ctx, p.persistTimeout)
	defer cancel()

	id, err := p.store.Store(ctx, model.ProfileCollection, profile)
	switch {
	case err == nil:
		metrics.CVPersistence.WithLabelValues("stored").Inc()
	case errors.Is(err, repo.ErrUnavailable):
		metrics.CVPersistence.WithLabelValues("unavailable").Inc()
		logger.Debug("profile not persisted: store unavailable")
	default:
		metrics.CVPersistence.WithLabelValues("failed").Inc()
		logger.Warn("failed to persist profile (non-fatal)", zap.Error(err))
	}
	return PersistResult{ID: id, Err: err}
}
