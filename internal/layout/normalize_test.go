package layout

import (
	"testing"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

func TestNormalizeMapsDocSpaceToPixels(t *testing.T) {
	runs := []entity.DocToken{
		{Text: "Totaal", X: 100, Y: 700, Width: 50, FontSize: 10},
	}
	space := PageSpace{DocWidth: 595, DocHeight: 842, PixelWidth: 1190, PixelHeight: 1684}

	tokens := Normalize(runs, space)
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	tok := tokens[0]
	if tok.X != 200 {
		t.Errorf("X = %d, want 200", tok.X)
	}
	// y flips: (842 - 700 - 10) * 2
	if tok.Y != 264 {
		t.Errorf("Y = %d, want 264", tok.Y)
	}
	if tok.Width != 100 {
		t.Errorf("Width = %d, want 100", tok.Width)
	}
	if tok.Height != 20 {
		t.Errorf("Height = %d, want 20", tok.Height)
	}
	if tok.FontSize != 20 {
		t.Errorf("FontSize = %v, want 20", tok.FontSize)
	}
	if tok.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", tok.Confidence)
	}
}

func TestNormalizeDefaultsToA4(t *testing.T) {
	runs := []entity.DocToken{
		{Text: "Factuur", X: 100, Y: 700, Width: 40, FontSize: 10},
	}
	tokens := Normalize(runs, PageSpace{PixelWidth: 595, PixelHeight: 842})
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	if tokens[0].X != 100 || tokens[0].Y != 132 {
		t.Errorf("got (%d,%d), want (100,132)", tokens[0].X, tokens[0].Y)
	}
}

func TestNormalizeDropsEmptyRuns(t *testing.T) {
	runs := []entity.DocToken{
		{Text: "  ", X: 10, Y: 700, Width: 5, FontSize: 10},
		{Text: "", X: 20, Y: 700, Width: 5, FontSize: 10},
		{Text: "BTW", X: 30, Y: 700, Width: 20, FontSize: 10},
	}
	tokens := Normalize(runs, PageSpace{DocWidth: 595, DocHeight: 842, PixelWidth: 595, PixelHeight: 842})
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	if tokens[0].Text != "BTW" {
		t.Errorf("Text = %q, want BTW", tokens[0].Text)
	}
}

func TestNormalizeFontSizeFallback(t *testing.T) {
	runs := []entity.DocToken{
		{Text: "x", X: 0, Y: 700, Width: 5, FontSize: 0},
	}
	tokens := Normalize(runs, PageSpace{DocWidth: 595, DocHeight: 842, PixelWidth: 595, PixelHeight: 842})
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	// missing font size is treated as 12pt
	if tokens[0].Y != 130 {
		t.Errorf("Y = %d, want 130", tokens[0].Y)
	}
	if tokens[0].Height != 12 {
		t.Errorf("Height = %d, want 12", tokens[0].Height)
	}
}

func TestNormalizeAssignsSequentialGroups(t *testing.T) {
	runs := []entity.DocToken{
		{Text: "a", X: 0, Y: 700, Width: 5, FontSize: 10},
		{Text: " ", X: 10, Y: 700, Width: 5, FontSize: 10},
		{Text: "b", X: 20, Y: 700, Width: 5, FontSize: 10},
	}
	tokens := Normalize(runs, PageSpace{DocWidth: 595, DocHeight: 842, PixelWidth: 595, PixelHeight: 842})
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	for i, tok := range tokens {
		if tok.GroupNum != i {
			t.Errorf("token %d GroupNum = %d, want %d", i, tok.GroupNum, i)
		}
	}
}
