// Command runlayout prints the normalized tokens and clustered text blocks
// of a PDF page. It is a debugging aid for tuning the layout heuristics.
//
// Usage: runlayout <invoice.pdf> [pixel-width] [pixel-height]
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/elvis888361/invoice-extractor/internal/docparse"
	"github.com/elvis888361/invoice-extractor/internal/layout"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage", "cmd", "runlayout <invoice.pdf> [pixel-width] [pixel-height]")
		os.Exit(2)
	}
	pdfPath := os.Args[1]

	// A4 at 300 DPI unless told otherwise.
	pixelW, pixelH := 2480, 3508
	if len(os.Args) >= 4 {
		if w, err := strconv.Atoi(os.Args[2]); err == nil && w > 0 {
			pixelW = w
		}
		if h, err := strconv.Atoi(os.Args[3]); err == nil && h > 0 {
			pixelH = h
		}
	}

	page, err := docparse.NewParser(logger).FirstPage(pdfPath)
	if err != nil {
		logger.Error("parse pdf", "error", err)
		os.Exit(1)
	}

	tokens := layout.Normalize(page.Runs, layout.PageSpace{
		DocWidth:    page.Width,
		DocHeight:   page.Height,
		PixelWidth:  pixelW,
		PixelHeight: pixelH,
	})
	blocks := layout.Cluster(tokens)

	fmt.Printf("%d runs -> %d tokens -> %d blocks\n\n", len(page.Runs), len(tokens), len(blocks))
	for i, block := range blocks {
		fmt.Printf("block %d (%d tokens):\n", i, len(block))
		for _, t := range block {
			fmt.Printf("  (%4d,%4d %3dx%2d) %q\n", t.X, t.Y, t.Width, t.Height, t.Text)
		}
		fmt.Println()
	}
}
