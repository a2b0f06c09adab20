package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

// minTotalsKeywords is the keyword density separating a totals panel from a
// block that merely mentions VAT once.
const minTotalsKeywords = 2

// ExtractTotals locates the totals panel by keyword density and derives the
// figures from its currency-bearing amounts: smallest is the VAT amount,
// largest the total including VAT. Subtotal and percentage follow
// arithmetically. Returns false when no block qualifies, in which case the
// caller falls back to the semantic extractor.
func ExtractTotals(blocks []entity.TextBlock) (entity.TotalsRecord, bool) {
	var record entity.TotalsRecord
	found := false

	for _, block := range blocks {
		keywordCount := 0
		for _, tok := range block {
			if containsAny(strings.ToLower(tok.Text), totalsKeywords) {
				keywordCount++
			}
		}
		if keywordCount <= minTotalsKeywords {
			continue
		}

		amounts := amountTokens(block)
		if len(amounts) == 0 {
			continue
		}

		sort.SliceStable(amounts, func(i, j int) bool {
			return amountOf(amounts[i]) < amountOf(amounts[j])
		})

		vat := amountOf(amounts[0])
		total := amountOf(amounts[len(amounts)-1])
		subtotal := total - vat

		record = entity.TotalsRecord{
			VATAmountItem:         &vat,
			TotalAmountInclVAT:    &total,
			SubtotalAmountExclVAT: &subtotal,
			Coordinates:           entity.CoordinatesOf(amounts),
		}
		if subtotal != 0 {
			pct := vat / subtotal * 100
			record.VATPercentage = &pct
		}
		found = true
	}
	return record, found
}

// amountTokens keeps the tokens that carry both a decimal number and a
// currency marker.
func amountTokens(block entity.TextBlock) []entity.Token {
	var out []entity.Token
	for _, tok := range block {
		if reAmount.MatchString(tok.Text) && reCurrency.MatchString(tok.Text) {
			out = append(out, tok)
		}
	}
	return out
}

func amountOf(tok entity.Token) float64 {
	m := reAmount.FindString(tok.Text)
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
