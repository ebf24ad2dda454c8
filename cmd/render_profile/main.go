package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cv-generator/internal/config"
	"cv-generator/internal/model"
	"cv-generator/internal/usecase"
	infra "cv-generator/pkg/infrastructure"
	"cv-generator/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	in := flag.String("in", "profile.json", "CV profile JSON file")
	outDir := flag.String("out", filepath.Join("resume-data", "generated"), "output directory")
	htmlOnly := flag.Bool("html-only", false, "write only the HTML document")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.Initialize(logger.Config{Level: cfg.Logging.Level, Development: true}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	raw, err := os.ReadFile(*in)
	if err != nil {
		logger.Fatal("read profile", zap.String("path", *in), zap.Error(err))
	}

	profile, err := model.ParseProfile(raw)
	if err != nil {
		reportInvalid(err)
		os.Exit(2)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal("create output directory", zap.Error(err))
	}

	pdfName := usecase.BuildFilename(profile.FullName, profile.JobTitleTarget)
	htmlPath := filepath.Join(*outDir, strings.TrimSuffix(pdfName, ".pdf")+".html")

	html, err := usecase.RenderHTML(profile)
	if err != nil {
		logger.Fatal("render html", zap.Error(err))
	}
	writeFile(htmlPath, []byte(html))
	if *htmlOnly {
		return
	}

	renderer, err := infra.NewRenderer(cfg.PDF)
	if err != nil {
		logger.Fatal("create renderer", zap.Error(err))
	}
	pdf, err := renderer.RenderHTMLToPDF(context.Background(), html)
	if err != nil {
		logger.Fatal("convert to pdf", zap.Error(err))
	}
	writeFile(filepath.Join(*outDir, pdfName), pdf)
}

func reportInvalid(err error) {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		logger.Error("invalid profile", zap.Error(err))
		return
	}
	for _, f := range verr.Fields {
		fmt.Fprintf(os.Stderr, "%s: %s\n", f.Field, f.Message)
	}
}

func writeFile(path string, b []byte) {
	if err := os.WriteFile(path, b, 0o644); err != nil {
		logger.Fatal("write output", zap.String("path", path), zap.Error(err))
	}
	fmt.Printf("wrote %s\n", path)
}
