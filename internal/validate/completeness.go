package validate

import (
	"fmt"
	"math"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

// trackedField is one entry of the weighted completeness table. The getter
// returns the field's display value and whether it counts as present; paths
// are explicit rather than discovered by reflection over the document tree.
type trackedField struct {
	Path        string
	Description string
	Weight      int
	Get         func(doc *entity.InvoiceDocument) (any, bool)
}

func strField(v *string) (any, bool) {
	if v == nil || *v == "" {
		return nil, false
	}
	return *v, true
}

func numField(v *float64) (any, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

// The 16 numbered invoice facts, tracked as 20 weighted field paths.
var trackedFields = []trackedField{
	{"sender.company", "1. Sender company name", 2,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Sender.Company) }},
	{"sender.address", "1. Sender address", 1,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Sender.Address) }},
	{"sender.phone", "1. Sender phone", 1,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Sender.Phone) }},
	{"sender.email", "1. Sender email", 1,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Sender.Email) }},
	{"receiver.company", "2. Receiver company name", 2,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Receiver.Company) }},
	{"receiver.address", "2. Receiver address", 1,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Receiver.Address) }},
	{"company.country", "3. Sender country (NL/BE/Other)", 2,
		func(d *entity.InvoiceDocument) (any, bool) {
			return d.Company.Country, d.Company.Country != ""
		}},
	{"company.logo.found", "4. Company logo detected", 1,
		func(d *entity.InvoiceDocument) (any, bool) {
			return d.Company.Logo.Found, d.Company.Logo.Found
		}},
	{"company.kvk_number", "5. Company registration number", 2,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Company.KVKNumber) }},
	{"company.vat_number", "6-7. VAT/BTW number", 2,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Company.VATNumber) }},
	{"invoice.date", "8. Invoice date", 2,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Invoice.Date) }},
	{"invoice.number", "9. Invoice number", 2,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Invoice.Number) }},
	{"invoice.paid", "10. Payment status", 1,
		func(d *entity.InvoiceDocument) (any, bool) {
			// a "not paid" verdict is still a populated field
			return d.Invoice.Paid, true
		}},
	{"invoice.payment_method", "10. Payment method", 1,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Invoice.PaymentMethod) }},
	{"total_amount_incl_vat", "11. Total amount incl. VAT", 3,
		func(d *entity.InvoiceDocument) (any, bool) { return numField(d.TotalAmountInclVAT) }},
	{"subtotal_amount_excl_vat", "12. Subtotal excl. VAT", 2,
		func(d *entity.InvoiceDocument) (any, bool) { return numField(d.SubtotalAmountExclVAT) }},
	{"vat_percentage", "13. VAT percentage", 2,
		func(d *entity.InvoiceDocument) (any, bool) { return numField(d.VATPercentage) }},
	{"items", "14. Invoice items", 2,
		func(d *entity.InvoiceDocument) (any, bool) {
			if len(d.Items) == 0 {
				return "No items", false
			}
			return fmt.Sprintf("%d items", len(d.Items)), true
		}},
	{"bank.iban", "15. IBAN number", 2,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Bank.IBAN) }},
	{"bank.account_holder", "16. Bank account holder", 1,
		func(d *entity.InvoiceDocument) (any, bool) { return strField(d.Bank.AccountHolder) }},
}

// lowScoreThreshold marks reports that need human review.
const lowScoreThreshold = 70

// Completeness scores the document against the weighted field table:
// score = achieved weight / total weight × 100, rounded.
func Completeness(doc *entity.InvoiceDocument) *entity.ValidationReport {
	report := &entity.ValidationReport{
		Complete:      true,
		MissingFields: []entity.MissingField{},
		Warnings:      []string{},
		FieldStatus:   make(map[string]entity.FieldStatus, len(trackedFields)),
	}

	totalWeight := 0
	achievedWeight := 0
	for _, f := range trackedFields {
		totalWeight += f.Weight
		value, present := f.Get(doc)

		report.FieldStatus[f.Path] = entity.FieldStatus{
			Present: present,
			Value:   value,
			Weight:  f.Weight,
		}
		if present {
			achievedWeight += f.Weight
			continue
		}
		// An empty item table is reported as missing and warned about below,
		// but on its own it does not clear the complete flag.
		if f.Path != "items" {
			report.Complete = false
		}
		report.MissingFields = append(report.MissingFields, entity.MissingField{
			Field:       f.Path,
			Description: f.Description,
			Weight:      f.Weight,
		})
	}

	report.CompletenessScore = int(math.Round(float64(achievedWeight) / float64(totalWeight) * 100))

	if doc.Company.Country == "" || doc.Company.Country == "UNKNOWN" {
		report.Warnings = append(report.Warnings, "Could not determine sender country (NL/BE)")
	}
	if len(doc.Items) == 0 {
		report.Warnings = append(report.Warnings, "No invoice items found - may affect total calculations")
	}
	if report.CompletenessScore < lowScoreThreshold {
		report.Warnings = append(report.Warnings, "Low data completeness - document may be unclear or damaged")
	}
	return report
}
