package validate

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/elvis888361/invoice-extractor/internal/entity"
	"github.com/elvis888361/invoice-extractor/internal/registry"
)

const (
	kvkLabelText = "K.v.K."
	vatLabelText = "BTWnr."
	kvkLength    = 8
)

// reVATNoise strips dots and percent-encoded spaces from a substituted VAT
// value read straight off the page.
var reVATNoise = regexp.MustCompile(`\.+|%20`)

// Validator runs the arithmetic and registry cross-checks over an assembled
// document. Every check is independent and non-fatal; findings land in the
// returned report as warnings, and only the KVK/VAT substitutions write back
// into the document.
type Validator struct {
	Registry registry.Lookup
	Logger   *slog.Logger
}

func NewValidator(reg registry.Lookup, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{Registry: reg, Logger: logger}
}

// Validate reconciles the document against the page tokens and the company
// registry, then scores completeness. The tokens are the normalized page
// layout, used to look up replacement values on labeled rows.
func (v *Validator) Validate(ctx context.Context, doc *entity.InvoiceDocument, tokens []entity.Token) *entity.ValidationReport {
	var warnings []string

	warnings = append(warnings, v.checkKVK(doc, tokens)...)
	warnings = append(warnings, v.checkVAT(doc, tokens)...)
	warnings = append(warnings, v.checkItemTotals(doc)...)
	warnings = append(warnings, v.checkTotals(doc)...)
	warnings = append(warnings, v.checkSenderIdentity(ctx, doc)...)

	report := Completeness(doc)
	report.Warnings = append(report.Warnings, warnings...)
	return report
}

// checkKVK accepts a registration number of exactly 8 characters after
// trimming. Anything else triggers a lookup of the value sharing a row with
// the "K.v.K." label, substituted in place.
func (v *Validator) checkKVK(doc *entity.InvoiceDocument, tokens []entity.Token) []string {
	kvk := ""
	if doc.Company.KVKNumber != nil {
		kvk = strings.TrimSpace(*doc.Company.KVKNumber)
	}
	if len(kvk) == kvkLength {
		return nil
	}

	replacement := valueOnLabelRow(tokens, kvkLabelText)
	if replacement == "" {
		if kvk == "" {
			return []string{"Company registration number not found"}
		}
		return []string{fmt.Sprintf("KVK number %q is not 8 characters and no replacement was found", kvk)}
	}

	v.Logger.Info("validate.kvk.substituted", "old", kvk, "new", replacement)
	doc.Company.KVKNumber = &replacement
	return []string{fmt.Sprintf("KVK number replaced with %q from the K.v.K. row", replacement)}
}

// checkVAT matches the VAT number against the per-country pattern table and
// substitutes the "BTWnr." row value on mismatch, stripping punctuation and
// percent-encoding from the replacement.
func (v *Validator) checkVAT(doc *entity.InvoiceDocument, tokens []entity.Token) []string {
	country := doc.Company.Country
	vat := ""
	if doc.Company.VATNumber != nil {
		vat = *doc.Company.VATNumber
	}
	if country == "" && vat == "" {
		return []string{"VAT number and sender country both unknown"}
	}
	if VATMatchesCountry(country, vat) {
		return nil
	}

	replacement := valueOnLabelRow(tokens, vatLabelText)
	if replacement == "" {
		return []string{fmt.Sprintf("VAT number %q does not match the %s pattern", vat, country)}
	}
	cleaned := reVATNoise.ReplaceAllString(replacement, "")

	v.Logger.Info("validate.vat.substituted", "old", vat, "new", cleaned)
	doc.Company.VATNumber = &cleaned
	return []string{fmt.Sprintf("VAT number replaced with %q from the BTWnr. row", cleaned)}
}

// checkItemTotals verifies quantity × unit price against the excl-VAT amount
// and the VAT uplift against the incl-VAT amount, both at 2-decimal
// rounding. Items are never mutated; mismatches are reported per item.
func (v *Validator) checkItemTotals(doc *entity.InvoiceDocument) []string {
	var warnings []string
	for _, item := range doc.Items {
		qty, okQty := parseNumber(item.Quantity)
		unit, okUnit := parseNumber(item.ItemUnitPrice)
		excl, okExcl := parseNumber(item.ItemAmountExclVAT)
		if !okQty || !okUnit || !okExcl {
			continue
		}

		calcExcl := round2(qty * unit)
		if calcExcl != round2(excl) {
			warnings = append(warnings,
				fmt.Sprintf("Item %s has incorrect totals", item.ArticleNumber))
			v.Logger.Warn("validate.item.excl_mismatch",
				"article", item.ArticleNumber, "calculated", calcExcl, "declared", excl)
			continue
		}

		pct, okPct := parseNumber(item.ItemVATPercentage)
		incl, okIncl := parseNumber(item.ItemAmountInclVAT)
		if !okPct || !okIncl {
			continue
		}
		calcIncl := round2(calcExcl * (1 + pct/100))
		if calcIncl != round2(incl) {
			warnings = append(warnings,
				fmt.Sprintf("Item %s has incorrect totals", item.ArticleNumber))
			v.Logger.Warn("validate.item.incl_mismatch",
				"article", item.ArticleNumber, "calculated", calcIncl, "declared", incl)
		}
	}
	return warnings
}

// checkTotals reconciles the declared subtotal with the sum of item excl-VAT
// amounts (exact at source resolution) and the declared total with the
// VAT-uplifted subtotal (at 2-decimal rounding).
func (v *Validator) checkTotals(doc *entity.InvoiceDocument) []string {
	if doc.TotalsFallback {
		// Semantic-extractor totals carry no page coordinates to reconcile
		// against, so arithmetic checks would only report noise.
		return nil
	}
	if doc.SubtotalAmountExclVAT == nil || doc.TotalAmountInclVAT == nil {
		return nil
	}

	var warnings []string

	sum := 0.0
	counted := 0
	for _, item := range doc.Items {
		if excl, ok := parseNumber(item.ItemAmountExclVAT); ok {
			sum += excl
			counted++
		}
	}
	if counted > 0 && round2(sum) != round2(*doc.SubtotalAmountExclVAT) {
		warnings = append(warnings, "Subtotal amount does not match the sum of item subtotals")
		v.Logger.Warn("validate.totals.subtotal_mismatch",
			"calculated", sum, "declared", *doc.SubtotalAmountExclVAT)
	}

	var pct float64
	havePct := false
	if doc.VATPercentage != nil {
		pct, havePct = *doc.VATPercentage, true
	} else if len(doc.Items) > 0 {
		pct, havePct = parseNumber(doc.Items[0].ItemVATPercentage)
	}
	if havePct {
		calcTotal := round2(*doc.SubtotalAmountExclVAT * (1 + pct/100))
		if calcTotal != round2(*doc.TotalAmountInclVAT) {
			warnings = append(warnings, "Total amount including VAT is incorrect")
			v.Logger.Warn("validate.totals.total_mismatch",
				"calculated", calcTotal, "declared", *doc.TotalAmountInclVAT)
		}
	}
	return warnings
}

// checkSenderIdentity compares the extracted sender name against the
// registry's canonical trading name. A lookup failure degrades to a warning.
func (v *Validator) checkSenderIdentity(ctx context.Context, doc *entity.InvoiceDocument) []string {
	if v.Registry == nil || doc.Company.KVKNumber == nil || doc.Sender.Company == nil {
		return nil
	}

	records, err := v.Registry.ByRegistrationNumber(ctx, *doc.Company.KVKNumber)
	if err != nil {
		v.Logger.Warn("validate.registry.lookup_failed",
			"kvk", *doc.Company.KVKNumber, "error", err)
		return []string{"Company registry lookup failed"}
	}
	if len(records) == 0 {
		return []string{"Company registry returned no record for the registration number"}
	}

	if !strings.EqualFold(strings.TrimSpace(*doc.Sender.Company), strings.TrimSpace(records[0].TradingName)) {
		v.Logger.Warn("validate.registry.name_mismatch",
			"extracted", *doc.Sender.Company, "canonical", records[0].TradingName)
		return []string{fmt.Sprintf(
			"Sender company %q does not match registry trading name %q",
			*doc.Sender.Company, records[0].TradingName)}
	}
	return nil
}

// valueOnLabelRow finds the token matching the label text and returns the
// text of another token sharing its vertical position. The last token on the
// row wins, matching the extraction heuristics' scan order.
func valueOnLabelRow(tokens []entity.Token, label string) string {
	labelY := -1
	for _, t := range tokens {
		if t.Text == label {
			labelY = t.Y
			break
		}
	}
	if labelY < 0 {
		return ""
	}

	value := ""
	for _, t := range tokens {
		if t.Y == labelY && t.Text != label {
			value = t.Text
		}
	}
	return value
}

// parseNumber reads a numeric cell the way it appears on Dutch invoices:
// optional currency marker, comma or dot decimals, optional trailing percent.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.NewReplacer("€", "", "EUR", "", "eur", "", "%", "", " ", "").Replace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
