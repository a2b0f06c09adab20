package extract

import (
	"strings"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

// Party is one side of the invoice (issuer or recipient).
type Party struct {
	Company  string
	Address  string
	Postcode string
	City     string
	Phone    string
	Email    string
	Website  string
}

// Details is everything the rule-based field pass could read from the text
// blocks and the raw recognized text. Empty string means not found; the
// extractor never invents a value.
type Details struct {
	Sender    Party
	Receiver  Party
	VATNumber string
	KVKNumber string
	Country   string
	InvoiceNo string
	Date      string
	IBAN      string
	Holder    string
}

// PaymentInfo is the keyword-derived payment status.
type PaymentInfo struct {
	Paid       bool
	Method     string
	Confidence float64
}

// ExtractDetails runs the keyword and pattern rules over the clustered text
// blocks (positional fields) and the raw recognized text (pattern fields).
// Every rule is independently optional; a miss leaves the field empty.
func ExtractDetails(blocks []entity.TextBlock, rawText string) Details {
	var d Details

	for _, block := range blocks {
		blockText := block.Text()
		lower := strings.ToLower(blockText)

		if containsAny(lower, senderKeywords) && !containsAny(lower, receiverKeywords) {
			extractSender(&d.Sender, block, blockText)
		}
	}

	for _, block := range blocks {
		lower := strings.ToLower(block.Text())
		if containsAny(lower, receiverBlockKeywords) {
			extractReceiver(&d.Receiver, block)
		}
	}

	d.VATNumber = extractVATNumber(rawText)
	d.KVKNumber = extractKVKNumber(rawText)
	d.Country = DetermineCountry(rawText, d.VATNumber)
	d.InvoiceNo = extractInvoiceNumber(rawText)
	d.Date = extractInvoiceDate(rawText)
	d.IBAN = reIBAN.FindString(rawText)
	d.Holder = extractAccountHolder(rawText, d.IBAN, d.Sender.Company)

	return d
}

func extractSender(s *Party, block entity.TextBlock, blockText string) {
	if s.Company == "" && len(block) > 0 {
		s.Company = block[0].Text
	}

	for _, tok := range block {
		text := tok.Text
		if m := rePostcode.FindStringSubmatch(text); m != nil {
			s.Postcode = m[1]
			s.City = strings.TrimSpace(m[2])
			continue
		}
		// Street addresses carry a house number; emails and URLs do not count.
		if reHasDigit.MatchString(text) &&
			!strings.Contains(text, "@") && !strings.Contains(text, "www") {
			s.Address = text
		}
	}

	if phone := rePhone.FindString(blockText); phone != "" {
		s.Phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)
	}
	if email := reEmail.FindString(blockText); email != "" {
		s.Email = email
	}
	if website := extractWebsite(blockText); website != "" {
		s.Website = website
	}
}

func extractReceiver(r *Party, block entity.TextBlock) {
	for _, tok := range block {
		text := tok.Text
		lower := strings.ToLower(text)

		// Skip the classifying keywords themselves.
		if containsAny(lower, receiverBlockKeywords) {
			continue
		}

		if r.Company == "" && len(strings.TrimSpace(text)) > 2 {
			r.Company = text
		}

		if m := rePostcode.FindStringSubmatch(text); m != nil {
			r.Postcode = m[1]
			r.City = strings.TrimSpace(m[2])
			continue
		}
		if reHasDigit.MatchString(text) {
			r.Address = text
		}
	}
}

func extractWebsite(text string) string {
	for _, m := range reWebsite.FindAllString(text, -1) {
		if !strings.Contains(m, "@") {
			return m
		}
	}
	return ""
}

func extractVATNumber(text string) string {
	if m := reVATNL.FindString(text); m != "" {
		return m
	}
	if m := reVATBE.FindString(text); m != "" {
		return m
	}
	if m := reVATLabel.FindString(text); m != "" {
		return strings.TrimSpace(reVATPrefix.ReplaceAllString(m, ""))
	}
	return ""
}

func extractKVKNumber(text string) string {
	if m := reKVKLabel.FindString(text); m != "" {
		return reKVK8.FindString(m)
	}
	// Belgian enterprise numbers double as the registration number.
	return reVATBE.FindString(text)
}

func extractInvoiceNumber(text string) string {
	if m := reInvoiceLabel.FindString(text); m != "" {
		return reDigits.FindString(m)
	}
	return ""
}

func extractInvoiceDate(text string) string {
	return reDate.FindString(text)
}

func extractAccountHolder(text, iban, senderCompany string) string {
	if iban == "" {
		return ""
	}
	idx := strings.Index(text, iban)
	if idx < 0 {
		return ""
	}

	lo := idx - 150
	if lo < 0 {
		lo = 0
	}
	hi := idx + 150
	if hi > len(text) {
		hi = len(text)
	}
	window := text[lo:hi]

	for _, pattern := range reHolderPatterns {
		if m := pattern.FindString(window); m != "" {
			name := reHolderLabels.ReplaceAllString(m, "")
			name = strings.TrimSpace(reSpaceRuns.ReplaceAllString(name, " "))
			if len(name) > 1 {
				return name
			}
		}
	}

	// No labeled name near the IBAN; the issuer usually holds the account.
	return senderCompany
}

// DetermineCountry infers the issuing country. The VAT-number prefix is
// authoritative; locale keywords are only consulted when no VAT number is
// known. "UNKNOWN" when neither rule fires.
func DetermineCountry(text, vatNumber string) string {
	if vatNumber != "" {
		if strings.HasPrefix(vatNumber, "NL") {
			return "NL"
		}
		if strings.HasPrefix(vatNumber, "BE") {
			return "BE"
		}
	}

	lower := strings.ToLower(text)
	if containsAny(lower, nlIndicators) {
		return "NL"
	}
	if containsAny(lower, beIndicators) {
		return "BE"
	}
	return "UNKNOWN"
}

// DeterminePaymentStatus classifies the payment state from keyword sets.
// A method keyword alone implies the invoice was paid, at lower confidence.
func DeterminePaymentStatus(text string) PaymentInfo {
	lower := strings.ToLower(text)

	hasPaid := containsAny(lower, paidKeywords)
	hasUnpaid := containsAny(lower, unpaidKeywords)

	info := PaymentInfo{Confidence: 0.3}
	if hasPaid && !hasUnpaid {
		info.Paid = true
	}

	for _, method := range paymentMethods {
		if strings.Contains(lower, method) {
			info.Method = method
			info.Paid = true
			break
		}
	}

	switch {
	case hasPaid:
		info.Confidence = 0.9
	case info.Method != "":
		info.Confidence = 0.7
	}
	return info
}

func containsAny(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}
