package layout

import (
	"math"
	"strings"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

// A4 in PDF points, used when the text-run parser reports no page size.
const (
	DefaultPageWidth  = 595.0
	DefaultPageHeight = 842.0
)

// PageSpace describes the source and target coordinate systems of one page.
type PageSpace struct {
	DocWidth    float64
	DocHeight   float64
	PixelWidth  int
	PixelHeight int
}

// Normalize maps document-space text runs onto the pixel grid of the rendered
// page. Document space has its origin bottom-left, the pixel grid top-left,
// so the y axis flips and the run's font size shifts the baseline to the top
// edge of the glyph box. Runs whose text is empty after trimming are dropped.
func Normalize(runs []entity.DocToken, space PageSpace) []entity.Token {
	docW := space.DocWidth
	docH := space.DocHeight
	if docW <= 0 {
		docW = DefaultPageWidth
	}
	if docH <= 0 {
		docH = DefaultPageHeight
	}

	scaleX := float64(space.PixelWidth) / docW
	scaleY := float64(space.PixelHeight) / docH

	tokens := make([]entity.Token, 0, len(runs))
	for _, run := range runs {
		if strings.TrimSpace(run.Text) == "" {
			continue
		}
		fontSize := run.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		tokens = append(tokens, entity.Token{
			Text:       run.Text,
			Confidence: 1.0,
			X:          int(math.Round(run.X * scaleX)),
			Y:          int(math.Round((docH - run.Y - fontSize) * scaleY)),
			Width:      int(math.Round(run.Width * scaleX)),
			Height:     int(math.Round(fontSize * scaleY)),
			FontSize:   fontSize * scaleY,
		})
	}
	for i := range tokens {
		tokens[i].GroupNum = i
	}
	return tokens
}
