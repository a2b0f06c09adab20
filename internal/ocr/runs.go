package ocr

import "github.com/elvis888361/invoice-extractor/internal/entity"

// TokensAsRuns converts recognizer tokens (pixel space, top-down) into
// document-space runs (bottom-up) over a page whose document size equals the
// pixel size. Feeding these through the coordinate normalizer with identical
// page and pixel dimensions reproduces the original tokens, so scanned
// documents and native PDFs share one pipeline entry point.
func TokensAsRuns(tokens []entity.Token, pageHeight int) []entity.DocToken {
	runs := make([]entity.DocToken, 0, len(tokens))
	for _, t := range tokens {
		runs = append(runs, entity.DocToken{
			Text:     t.Text,
			X:        float64(t.X),
			Y:        float64(pageHeight - t.Y - t.Height),
			Width:    float64(t.Width),
			FontSize: float64(t.Height),
		})
	}
	return runs
}
