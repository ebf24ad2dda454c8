package http

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	repo "cv-generator/internal/adapter/repository"
	"cv-generator/internal/config"
	"cv-generator/internal/domain"
	"cv-generator/internal/model"
	"cv-generator/internal/usecase"
	"cv-generator/pkg/infrastructure"
	"cv-generator/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	diagCollections  = 10
)

// Generator runs one CV generation from a raw JSON submission.
type Generator interface {
	Generate(ctx context.Context, raw []byte) (*usecase.GenerateResult, error)
}

// ProfileStore is the read side of the document store.
type ProfileStore interface {
	Available() bool
	Ping(ctx context.Context) error
	Get(ctx context.Context, collection, id string) (*domain.Document, error)
	List(ctx context.Context, collection string, limit int) ([]domain.Document, error)
	Collections(ctx context.Context, limit int) ([]string, error)
}

type Handler struct {
	generator Generator
	store     ProfileStore
	db        config.DatabaseConfig
}

func NewHandler(g Generator, s ProfileStore, db config.DatabaseConfig) *Handler {
	return &Handler{generator: g, store: s, db: db}
}

type profileResponse struct {
	ID        string          `json:"id"`
	Profile   json.RawMessage `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toProfileResponse(d domain.Document) profileResponse {
	return profileResponse{
		ID:        d.ID.String(),
		Profile:   d.Data,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "MakeMeHired Backend Running"})
}

// Diagnostics reports backend and document store health. It always answers
// 200; store problems are described in the body.
func (h *Handler) Diagnostics(c *fiber.Ctx) error {
	resp := fiber.Map{
		"backend":           "running",
		"database":          "not available",
		"connection_status": "not connected",
		"collections":       []string{},
		"database_url":      setOrNot(h.db.URL),
		"database_name":     setOrNot(h.db.Name),
	}

	if h.store == nil || !h.store.Available() {
		return c.JSON(resp)
	}

	if err := h.store.Ping(c.UserContext()); err != nil {
		logger.Warn("diagnostics: ping failed", zap.Error(err))
		resp["database"] = "error: " + truncate(err.Error(), 50)
		return c.JSON(resp)
	}

	resp["connection_status"] = "connected"
	names, err := h.store.Collections(c.UserContext(), diagCollections)
	if err != nil {
		logger.Warn("diagnostics: list collections failed", zap.Error(err))
		resp["database"] = "connected but error: " + truncate(err.Error(), 50)
		return c.JSON(resp)
	}
	resp["database"] = "connected and working"
	if names != nil {
		resp["collections"] = names
	}
	return c.JSON(resp)
}

// GenerateCV validates the submitted profile and returns the rendered HTML
// and base64 PDF. Errors are mapped to status codes by ErrorHandler.
func (h *Handler) GenerateCV(c *fiber.Ctx) error {
	res, err := h.generator.Generate(c.UserContext(), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": model.AvailableTemplates()})
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid profile id")
	}
	if h.store == nil {
		return repo.ErrUnavailable
	}

	doc, err := h.store.Get(c.UserContext(), model.ProfileCollection, id)
	if err != nil {
		return err
	}
	return c.JSON(toProfileResponse(*doc))
}

func (h *Handler) ListProfiles(c *fiber.Ctx) error {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxListLimit)
	}
	if h.store == nil {
		return repo.ErrUnavailable
	}

	docs, err := h.store.List(c.UserContext(), model.ProfileCollection, limit)
	if err != nil {
		return err
	}
	out := make([]profileResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toProfileResponse(d))
	}
	return c.JSON(fiber.Map{"profiles": out})
}

// ErrorHandler maps pipeline errors onto HTTP responses. Validation failures
// carry field details; server-side failures never leak their cause.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		verr   *model.ValidationError
		cerr   *infrastructure.ConversionError
		ferr   *fiber.Error
		status = fiber.StatusInternalServerError
		body   = errorResponse{Error: "internal server error"}
	)

	switch {
	case errors.As(err, &verr):
		status = fiber.StatusUnprocessableEntity
		body = errorResponse{Error: "validation failed", Details: verr.Fields}
	case errors.Is(err, repo.ErrNotFound):
		status = fiber.StatusNotFound
		body.Error = "profile not found"
	case errors.Is(err, repo.ErrUnavailable):
		status = fiber.StatusServiceUnavailable
		body.Error = "document store unavailable"
	case errors.As(err, &ferr):
		status = ferr.Code
		body.Error = ferr.Message
	default:
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		if errors.As(err, &cerr) {
			body.Error = "PDF generation failed"
		}
	}

	return c.Status(status).JSON(body)
}

type errorResponse struct {
	Error   string             `json:"error"`
	Details []model.FieldError `json:"details,omitempty"`
}

func setOrNot(v string) string {
	if v == "" {
		return "not set"
	}
	return "set"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
