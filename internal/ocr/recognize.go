package ocr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

// RecognizeText runs a plain-text pass over the rendered page. The pattern
// extractors work on this text; the positioned tokens come from
// RecognizeTokens or the native text-run parser.
func (e *Engine) RecognizeText(ctx context.Context, imagePath string) (string, error) {
	args := []string{imagePath, "stdout", "-l", e.cfg.Language}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 1<<10))
	}
	return string(out), nil
}

// RecognizeTokens runs tesseract in TSV mode and returns word-level tokens
// with bounding boxes, already in pixel space of the rendered page. Words
// the engine rejected (conf -1) and empty cells are dropped.
func (e *Engine) RecognizeTokens(ctx context.Context, imagePath string) ([]entity.Token, error) {
	args := []string{imagePath, "stdout", "-l", e.cfg.Language}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract TSV: %w: %s", err, truncate(string(errb), 1<<10))
	}

	// TSV columns: level page block par line word left top width height conf text
	var tokens []entity.Token
	for i, line := range strings.Split(string(out), "\n") {
		if i == 0 || line == "" {
			continue // header
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 12 {
			continue
		}
		if cols[0] != "5" { // word level only
			continue
		}
		text := strings.TrimSpace(cols[11])
		if text == "" {
			continue
		}
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf < 0 {
			continue
		}

		left, _ := strconv.Atoi(cols[6])
		top, _ := strconv.Atoi(cols[7])
		width, _ := strconv.Atoi(cols[8])
		height, _ := strconv.Atoi(cols[9])

		tokens = append(tokens, entity.Token{
			Text:       text,
			Confidence: conf / 100.0,
			X:          left,
			Y:          top,
			Width:      width,
			Height:     height,
			FontSize:   float64(height),
		})
	}
	for i := range tokens {
		tokens[i].GroupNum = i
	}
	return tokens, nil
}
