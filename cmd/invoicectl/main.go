// Command invoicectl extracts a structured invoice record from a PDF and
// writes the result as JSON, with an optional XLSX workbook next to it.
//
// Usage: invoicectl <invoice.pdf> [output-dir]
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/elvis888361/invoice-extractor/internal/common"
	"github.com/elvis888361/invoice-extractor/internal/docparse"
	"github.com/elvis888361/invoice-extractor/internal/export"
	"github.com/elvis888361/invoice-extractor/internal/llm/openai"
	"github.com/elvis888361/invoice-extractor/internal/ocr"
	"github.com/elvis888361/invoice-extractor/internal/pipeline"
	"github.com/elvis888361/invoice-extractor/internal/registry/openkvk"
	"github.com/elvis888361/invoice-extractor/internal/validate"
)

func main() {
	_ = godotenv.Load()

	zlog, _ := zap.NewProduction()
	defer func() { _ = zlog.Sync() }()
	log := zlog.Sugar()

	slogger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(slogger)

	if len(os.Args) < 2 || len(os.Args) > 3 {
		log.Fatal("usage: invoicectl <invoice.pdf> [output-dir]")
	}
	pdfPath := os.Args[1]
	outDir := "./output"
	if len(os.Args) == 3 {
		outDir = os.Args[2]
	}

	cfg := common.LoadConfig()
	if cfg.LLM.APIKey == "" {
		log.Warn("OPENAI_API_KEY not set; totals fallback disabled")
	}
	if cfg.Registry.APIKey == "" {
		log.Warn("KVK_API_KEY not set; registry cross-check disabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	engine := ocr.NewEngine(ocr.Config{
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		DPI:         cfg.OCR.DPI,
		TessdataDir: cfg.OCR.TessdataDir,
	}, slogger)

	raster, err := engine.RasterizeFirstPage(ctx, pdfPath, outDir)
	if err != nil {
		log.Fatalf("rasterize: %v", err)
	}
	log.Infow("page rendered", "image", raster.ImagePath,
		"width", raster.Width, "height", raster.Height)

	rawText, err := engine.RecognizeText(ctx, raster.ImagePath)
	if err != nil {
		log.Fatalf("recognize text: %v", err)
	}

	req := pipeline.Request{
		PixelWidth:  raster.Width,
		PixelHeight: raster.Height,
		RawText:     rawText,
	}

	// Prefer the native text runs; scanned documents fall back to
	// OCR-positioned tokens fed through the same normalizer.
	parser := docparse.NewParser(slogger)
	if page, err := parser.FirstPage(pdfPath); err == nil && len(page.Runs) > 0 {
		req.Runs = page.Runs
		req.PageWidth = page.Width
		req.PageHeight = page.Height
	} else {
		if err != nil {
			log.Warnw("native text runs unavailable, using OCR tokens", "error", err)
		}
		tokens, tErr := engine.RecognizeTokens(ctx, raster.ImagePath)
		if tErr != nil {
			log.Fatalf("recognize tokens: %v", tErr)
		}
		req.Runs = ocr.TokensAsRuns(tokens, raster.Height)
		req.PageWidth = float64(raster.Width)
		req.PageHeight = float64(raster.Height)
	}

	var semantic *openai.Client
	if cfg.LLM.APIKey != "" {
		semantic = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, slogger)
	}

	validator := validate.NewValidator(nil, slogger)
	if cfg.Registry.APIKey != "" {
		validator = validate.NewValidator(openkvk.NewClient(openkvk.Config{
			BaseURL: cfg.Registry.BaseURL,
			APIKey:  cfg.Registry.APIKey,
			Timeout: cfg.Registry.Timeout,
		}, slogger), slogger)
	}

	var p *pipeline.Pipeline
	if semantic != nil {
		p = pipeline.New(slogger, semantic, validator, nil)
	} else {
		p = pipeline.New(slogger, nil, validator, nil)
	}

	doc, err := p.Run(ctx, req)
	if err != nil {
		log.Fatalf("extraction failed: %v", err)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	jsonPath := filepath.Join(outDir, "invoice.json")
	if err := os.WriteFile(jsonPath, out, 0o644); err != nil {
		log.Fatalf("write %s: %v", jsonPath, err)
	}

	xlsx, err := export.NewService(slogger).InvoiceXLSX(doc)
	if err != nil {
		log.Warnw("xlsx export failed", "error", err)
	} else {
		xlsxPath := filepath.Join(outDir, "invoice.xlsx")
		if err := os.WriteFile(xlsxPath, xlsx, 0o644); err != nil {
			log.Warnw("write xlsx", "path", xlsxPath, "error", err)
		}
	}

	log.Infow("done",
		"json", jsonPath,
		"items", len(doc.Items),
		"completeness", doc.DataValidation.CompletenessScore,
	)
}
