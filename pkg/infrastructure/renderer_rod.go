package infrastructure

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodRenderer renders HTML in a headless Chromium driven by go-rod.
type RodRenderer struct {
	binPath string
	timeout time.Duration
}

func NewRodRenderer(binPath string, timeout time.Duration) *RodRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RodRenderer{binPath: binPath, timeout: timeout}
}

func (r *RodRenderer) RenderHTMLToPDF(ctx context.Context, html string) (pdf []byte, err error) {
	start := time.Now()
	defer func() { observeConversion("rod", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	launch := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)

	if r.binPath != "" {
		launch = launch.Bin(r.binPath)
	} else if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, conversionError("rod", fmt.Errorf("launch chromium: %w", err))
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, conversionError("rod", fmt.Errorf("connect browser: %w", err))
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, conversionError("rod", fmt.Errorf("create page: %w", err))
	}
	defer func() {
		_ = page.Close()
	}()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, conversionError("rod", fmt.Errorf("set document content: %w", err))
	}
	if err := page.WaitLoad(); err != nil {
		return nil, conversionError("rod", fmt.Errorf("wait load: %w", err))
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PaperWidth:        inches(a4WidthIn),
		PaperHeight:       inches(a4HeightIn),
		MarginTop:         inches(marginIn),
		MarginBottom:      inches(marginIn),
		MarginLeft:        inches(marginIn),
		MarginRight:       inches(marginIn),
	})
	if err != nil {
		return nil, conversionError("rod", fmt.Errorf("export pdf: %w", err))
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, conversionError("rod", fmt.Errorf("read pdf bytes: %w", err))
	}
	if err := checkPDF("rod", data); err != nil {
		return nil, err
	}
	return data, nil
}

func inches(v float64) *float64 { return &v }
