// Package docparse reads native PDF text runs with their positions, playing
// the document text-run parser role for digitally-born invoices.
package docparse

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ledongthuc/pdf"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

// PageTokens is the first page's text runs plus the page size in points.
type PageTokens struct {
	Runs   []entity.DocToken
	Width  float64
	Height float64
}

type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// FirstPage extracts the text runs of page 1 in document coordinate space
// (origin bottom-left, units are PDF points).
func (p *Parser) FirstPage(path string) (PageTokens, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return PageTokens{}, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.logger.Warn("pdf close error", "path", path, "error", err)
		}
	}()

	if reader.NumPage() < 1 {
		return PageTokens{}, fmt.Errorf("pdf has no pages")
	}
	page := reader.Page(1)
	if page.V.IsNull() {
		return PageTokens{}, fmt.Errorf("pdf page 1 unreadable")
	}

	width, height := mediaBox(page)
	runs := assembleRuns(page.Content().Text)

	p.logger.Debug("docparse ok",
		"path", path, "runs", len(runs), "page_w", width, "page_h", height)

	return PageTokens{Runs: runs, Width: width, Height: height}, nil
}

func mediaBox(page pdf.Page) (float64, float64) {
	box := page.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return 0, 0 // caller falls back to A4
	}
	llx := box.Index(0).Float64()
	lly := box.Index(1).Float64()
	urx := box.Index(2).Float64()
	ury := box.Index(3).Float64()
	return urx - llx, ury - lly
}

// assembleRuns merges the reader's per-glyph texts into word-level runs: a
// glyph continues the current run while it stays on the same baseline and
// the horizontal gap is small relative to the font size.
func assembleRuns(texts []pdf.Text) []entity.DocToken {
	var runs []entity.DocToken
	var cur *entity.DocToken
	var curEnd float64

	flush := func() {
		if cur != nil && cur.Text != "" {
			runs = append(runs, *cur)
		}
		cur = nil
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		gapLimit := t.FontSize * 0.3
		if gapLimit <= 0 {
			gapLimit = 1
		}

		if cur != nil &&
			math.Abs(t.Y-cur.Y) < 0.5 &&
			t.X >= curEnd-0.5 && t.X-curEnd <= gapLimit {
			cur.Text += t.S
			curEnd = t.X + t.W
			cur.Width = curEnd - cur.X
			continue
		}

		flush()
		cur = &entity.DocToken{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			FontSize: t.FontSize,
		}
		curEnd = t.X + t.W
	}
	flush()
	return runs
}
