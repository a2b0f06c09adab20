package extract

import (
	"math"
	"testing"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

func totalsBlock() entity.TextBlock {
	return entity.TextBlock{
		rowToken("Subtotaal", 400, 600),
		rowToken("Totaal BTW", 400, 618),
		rowToken("Totaal incl. BTW", 400, 636),
		rowToken("€ 106.73", 520, 600),
		rowToken("€ 22.41", 520, 618),
		rowToken("€ 129.14", 520, 636),
	}
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 0.001
}

func TestExtractTotalsDerivesFigures(t *testing.T) {
	record, ok := ExtractTotals([]entity.TextBlock{totalsBlock()})
	if !ok {
		t.Fatal("no totals block recognized")
	}

	if record.VATAmountItem == nil || !closeTo(*record.VATAmountItem, 22.41) {
		t.Errorf("vat = %v, want 22.41", record.VATAmountItem)
	}
	if record.TotalAmountInclVAT == nil || !closeTo(*record.TotalAmountInclVAT, 129.14) {
		t.Errorf("total = %v, want 129.14", record.TotalAmountInclVAT)
	}
	if record.SubtotalAmountExclVAT == nil || !closeTo(*record.SubtotalAmountExclVAT, 106.73) {
		t.Errorf("subtotal = %v, want 106.73", record.SubtotalAmountExclVAT)
	}
	if record.VATPercentage == nil || !closeTo(*record.VATPercentage, 22.41/106.73*100) {
		t.Errorf("vat percentage = %v", record.VATPercentage)
	}
	if len(record.Coordinates) != 3 {
		t.Errorf("got %d coordinates, want 3", len(record.Coordinates))
	}
}

func TestExtractTotalsNeedsKeywordDensity(t *testing.T) {
	// Two keyword-bearing tokens are not enough to qualify as a totals panel.
	block := entity.TextBlock{
		rowToken("BTW verlegd", 50, 100),
		rowToken("Totaalgewicht € 12.50", 200, 100),
	}
	if _, ok := ExtractTotals([]entity.TextBlock{block}); ok {
		t.Error("sparse block was accepted as a totals panel")
	}
}

func TestExtractTotalsNeedsAmounts(t *testing.T) {
	block := entity.TextBlock{
		rowToken("Subtotaal", 50, 100),
		rowToken("Totaal BTW", 50, 118),
		rowToken("Totaal incl. BTW", 50, 136),
	}
	if _, ok := ExtractTotals([]entity.TextBlock{block}); ok {
		t.Error("block without currency amounts was accepted")
	}
}

func TestExtractTotalsLastQualifyingBlockWins(t *testing.T) {
	early := entity.TextBlock{
		rowToken("Subtotaal", 50, 100),
		rowToken("Totaal BTW", 50, 118),
		rowToken("€ 5.00", 150, 100),
		rowToken("€ 10.00", 150, 118),
	}
	record, ok := ExtractTotals([]entity.TextBlock{early, totalsBlock()})
	if !ok {
		t.Fatal("no totals block recognized")
	}
	if record.TotalAmountInclVAT == nil || !closeTo(*record.TotalAmountInclVAT, 129.14) {
		t.Errorf("total = %v, want 129.14 from the later block", record.TotalAmountInclVAT)
	}
}
