package infrastructure

import (
	"context"
	"fmt"

	"cv-generator/internal/config"
)

// PDFRenderer converts a complete HTML document into PDF bytes.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// NewRenderer picks the conversion engine named by cfg.Engine.
func NewRenderer(cfg config.PDFConfig) (PDFRenderer, error) {
	switch cfg.Engine {
	case config.EngineChromedp, "":
		return NewChromedpRenderer(cfg.ChromePath, cfg.Timeout), nil
	case config.EngineRod:
		return NewRodRenderer(cfg.ChromePath, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown pdf engine %q", cfg.Engine)
	}
}
