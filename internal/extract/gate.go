package extract

import "strings"

// IsInvoiceText decides whether the recognized text looks like an invoice at
// all: it must mention an invoice term, or carry financial vocabulary or
// decimal amounts. This is the one gate that may stop the pipeline early.
func IsInvoiceText(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)

	hasInvoiceTerm := containsAny(lower, invoiceTerms)
	hasFinancialTerm := containsAny(lower, financialTerms) || reDecimal.MatchString(lower)

	return hasInvoiceTerm || hasFinancialTerm
}
