// Package ocr drives the external poppler and tesseract binaries that play
// the page-rasterizer and text-recognizer roles for the extraction pipeline.
package ocr

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language    string // default "eng"
	DPI         int    // rasterization DPI, default 300
	TessdataDir string
}

// RasterResult is the rendered first page of a document.
type RasterResult struct {
	ImagePath string
	Width     int
	Height    int
	Duration  time.Duration
}

type Engine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Engine{cfg: cfg, runner: execRunner{}, logger: logger}
}

// RasterizeFirstPage renders page 1 of the PDF into outDir and reports the
// pixel dimensions of the result. When the image cannot be decoded the A4
// point size is reported instead, so downstream scaling degrades to 1:1.
func (e *Engine) RasterizeFirstPage(ctx context.Context, pdfPath, outDir string) (RasterResult, error) {
	start := time.Now()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return RasterResult{}, fmt.Errorf("create output dir: %w", err)
	}
	prefix := filepath.Join(outDir, "page")

	// pdftoppm -r <dpi> -jpeg -f 1 -l 1 <in.pdf> <out/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", e.cfg.DPI), "-jpeg", "-f", "1", "-l", "1", pdfPath, prefix)
	if err != nil {
		return RasterResult{}, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 1<<10))
	}

	matches, _ := filepath.Glob(prefix + "-*.jpg")
	sort.Strings(matches)
	if len(matches) == 0 {
		return RasterResult{}, fmt.Errorf("pdftoppm produced no images")
	}
	imagePath := matches[0]

	width, height := e.imageDimensions(imagePath)
	e.logger.Debug("raster ok", "image", imagePath, "width", width, "height", height)

	return RasterResult{
		ImagePath: imagePath,
		Width:     width,
		Height:    height,
		Duration:  time.Since(start),
	}, nil
}

func (e *Engine) imageDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		e.logger.Warn("image open failed, assuming A4", "path", path, "error", err)
		return 595, 842
	}
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("image close error", "error", err)
		}
	}()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		e.logger.Warn("image decode failed, assuming A4", "path", path, "error", err)
		return 595, 842
	}
	return cfg.Width, cfg.Height
}
