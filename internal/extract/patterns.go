package extract

import "regexp"

// Keyword sets and patterns tuned for Dutch/Belgian invoices. The extractors
// lean on these tables rather than on layout, so locale variants are added
// here without touching the clustering or row logic.

var (
	// Dutch mobile/landline formats, with optional country prefix.
	rePhone = regexp.MustCompile(`(\+31|0031|0)[\s\-]?[1-9][\s\-]?\d{8}|\d{2,3}[\s\-]?\d{7,8}`)

	reEmail   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	reWebsite = regexp.MustCompile(`(https?://)?(www\.)?([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}(/[^\s]*)?`)

	// Dutch VAT: NL + 9 digits + B + 2 digits. Belgian VAT: BE + 10 digits.
	reVATNL     = regexp.MustCompile(`NL\d{9}B\d{2}`)
	reVATBE     = regexp.MustCompile(`BE\d{10}`)
	reVATLabel  = regexp.MustCompile(`(?i)BTW[\s:-]*(NL\d{9}B\d{2}|BE\d{10}|\d{9,12})`)
	reVATPrefix = regexp.MustCompile(`(?i)BTW[\s:-]*`)

	// Dutch KvK number is 8 digits after a chamber-of-commerce label.
	reKVKLabel = regexp.MustCompile(`(?i)(KvK|K\.v\.K|handelsregister)[\s:-]*(\d{8})`)
	reKVK8     = regexp.MustCompile(`\d{8}`)

	reIBAN = regexp.MustCompile(`[A-Z]{2}\d{2}[A-Z0-9]{4}\d{10}`)

	reInvoiceLabel = regexp.MustCompile(`(?i)(factuur|invoice|faktuurnr|factuurnummer)[\s:-]*(\d+)`)
	reDigits       = regexp.MustCompile(`\d+`)

	// DD-MM-YYYY, DD/MM/YYYY and YYYY-MM-DD families.
	reDate = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{4}|\d{4}[-/]\d{1,2}[-/]\d{1,2}`)

	// Dutch postcode (4 digits + 2 letters) followed by a city name.
	rePostcode = regexp.MustCompile(`(\d{4}\s?[A-Z]{2})\s+([A-Za-z\s]+)`)

	reHasDigit = regexp.MustCompile(`\d+`)

	// Account holder labels searched near an IBAN.
	reHolderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(t\.n\.v\.|tnv|ten name van)[\s:]*([\w\s&.-]{2,50})`),
		regexp.MustCompile(`(?i)(rekeninghouder|account holder)[\s:]*([\w\s&.-]{2,50})`),
		regexp.MustCompile(`(?i)(naam|name)[\s:]*([\w\s&.-]{2,50})`),
	}
	reHolderLabels = regexp.MustCompile(`(?i)t\.n\.v\.|tnv|ten name van|rekeninghouder|account holder|naam|name`)
	reSpaceRuns    = regexp.MustCompile(`[:\s]+`)

	// Amounts inside a totals panel: a decimal number with a currency marker.
	reAmount   = regexp.MustCompile(`\d+(\.\d{1,2})?`)
	reCurrency = regexp.MustCompile(`(?i)eur|doll|usd|€`)

	// Decimal number with comma or dot separator, for the invoice gate.
	reDecimal = regexp.MustCompile(`\d+,\d+|\d+\.\d+`)
)

var (
	senderKeywords   = []string{"fax", "tel", "website", "www", "kvk", "btw nummer", "vat"}
	receiverKeywords = []string{"debiteur", "klant", "tav", "t.a.v", "facturatie"}

	// The receiver classifier additionally accepts the bare "aan".
	receiverBlockKeywords = []string{"debiteur", "klant", "tav", "t.a.v", "facturatie", "aan"}

	headerKeywords = []string{
		"artikel", "artikelnummer", "artikelnr", "product", "omschrijving",
		"aantal", "stukprijs", "eenheid", "btw", "totaal", "%",
		"excl. btw", "incl. btw",
	}

	totalsKeywords = []string{"btw", "totaal", "totaal btw", "excl. btw", "incl. btw", "subtotaal", "€"}

	paidKeywords   = []string{"betaald", "paid", "voldaan", "gelukt", "successful", "completed"}
	unpaidKeywords = []string{"openstaand", "unpaid", "outstanding", "pending", "due"}
	paymentMethods = []string{
		"pin", "ideal", "banktransfer", "contant", "cash", "creditcard",
		"mastercard", "visa", "paypal", "sepa", "overboeking",
	}

	nlIndicators = []string{"nederland", "netherlands", "holland", "nl"}
	beIndicators = []string{"belgie", "belgique", "belgium", "be"}

	invoiceTerms = []string{
		"factuur", "invoice", "nota", "order", "pakbon", "bon", "kassabon",
	}
	financialTerms = []string{
		"€", ",", "excl btw", " btw", "21%", "9%", "0%", "totaal", "subtotaal",
	}
)
