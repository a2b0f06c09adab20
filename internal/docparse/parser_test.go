package docparse

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func glyph(s string, x, y, w, fontSize float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: fontSize}
}

func TestAssembleRunsMergesAdjacentGlyphs(t *testing.T) {
	texts := []pdf.Text{
		glyph("F", 100, 700, 6, 12),
		glyph("a", 106, 700, 6, 12),
		glyph("c", 112, 700, 6, 12),
		glyph("t", 118, 700, 6, 12),
		glyph("u", 124, 700, 6, 12),
		glyph("u", 130, 700, 6, 12),
		glyph("r", 136, 700, 6, 12),
	}
	runs := assembleRuns(texts)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Text != "Factuur" {
		t.Errorf("text = %q", runs[0].Text)
	}
	if runs[0].X != 100 || runs[0].Width != 42 {
		t.Errorf("box = (%v, %v)", runs[0].X, runs[0].Width)
	}
}

func TestAssembleRunsSplitsOnWordGap(t *testing.T) {
	// The gap between the words exceeds 30% of the font size.
	texts := []pdf.Text{
		glyph("T", 100, 700, 6, 12),
		glyph("o", 106, 700, 6, 12),
		glyph("t", 112, 700, 6, 12),
		glyph("€", 160, 700, 8, 12),
	}
	runs := assembleRuns(texts)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Text != "Tot" || runs[1].Text != "€" {
		t.Errorf("runs = %q, %q", runs[0].Text, runs[1].Text)
	}
}

func TestAssembleRunsSplitsOnBaselineChange(t *testing.T) {
	texts := []pdf.Text{
		glyph("A", 100, 700, 6, 12),
		glyph("B", 106, 684, 6, 12),
	}
	runs := assembleRuns(texts)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
}

func TestAssembleRunsSkipsEmptyGlyphs(t *testing.T) {
	texts := []pdf.Text{
		glyph("", 100, 700, 6, 12),
		glyph("X", 106, 700, 6, 12),
	}
	runs := assembleRuns(texts)
	if len(runs) != 1 || runs[0].Text != "X" {
		t.Errorf("runs = %v", runs)
	}
}
