package entity

// LineItem is one row of the invoice item table. Numeric cells stay strings:
// the extractor never fabricates a number it could not parse, and absence is
// an empty string or nil, never a made-up value.
type LineItem struct {
	ArticleNumber     string       `json:"article_number"`
	Name              string       `json:"name"`
	Quantity          string       `json:"quantity"`
	ItemUnitPrice     string       `json:"item_unit_price"`
	ItemAmountExclVAT string       `json:"item_amount_excl_vat"`
	ItemVATPercentage string       `json:"item_vat_percentage"`
	ItemAmountInclVAT string       `json:"item_amount_incl_vat"`
	ItemVATAmount     string       `json:"item_vat_amount"`
	Coordinates       []Coordinate `json:"coordinates"`
}

// TotalsRecord holds the derived invoice totals. When Fallback is true the
// values came from the semantic extractor and the subtotal/vat arithmetic
// invariants are not guaranteed.
type TotalsRecord struct {
	VATAmountItem         *float64     `json:"vat_amount_item"`
	TotalAmountInclVAT    *float64     `json:"total_amount_incl_vat"`
	SubtotalAmountExclVAT *float64     `json:"subtotal_amount_excl_vat"`
	VATPercentage         *float64     `json:"vat_percentage"`
	Coordinates           []Coordinate `json:"coordinates"`
	Fallback              bool         `json:"-"`
}

// Sender is the party issuing the invoice.
type Sender struct {
	Company  *string `json:"company"`
	Address  *string `json:"address"`
	Postcode *string `json:"postcode"`
	City     *string `json:"city"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Website  *string `json:"website"`
	Country  string  `json:"country"`
}

// Receiver is the party the invoice is addressed to.
type Receiver struct {
	Company       *string `json:"company"`
	Address       *string `json:"address"`
	Postcode      *string `json:"postcode"`
	City          *string `json:"city"`
	ContactPerson *string `json:"contact_person"`
}

// LogoPosition is an estimated logo bounding box.
type LogoPosition struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Logo reports whether a company logo was detected on the page.
type Logo struct {
	Found             bool          `json:"found"`
	Coordinates       []Coordinate  `json:"coordinates"`
	EstimatedPosition *LogoPosition `json:"estimated_position"`
}

// Company holds registration identifiers of the issuing company.
type Company struct {
	KVKNumber *string `json:"kvk_number"`
	VATNumber *string `json:"vat_number"`
	Country   string  `json:"country"`
	Logo      Logo    `json:"logo"`
}

// Invoice holds the invoice-level administrative fields.
type Invoice struct {
	Number            *string `json:"number"`
	Date              *string `json:"date"`
	Paid              bool    `json:"paid"`
	PaymentMethod     *string `json:"payment_method"`
	PaymentConfidence float64 `json:"payment_confidence"`
}

// Bank holds the payment account details.
type Bank struct {
	IBAN          *string `json:"iban"`
	AccountHolder *string `json:"account_holder"`
}

// ProcessingError is a non-fatal event recorded during extraction, such as
// the geometric totals pass failing over to the semantic extractor.
type ProcessingError struct {
	Error string `json:"error"`
}

// InvoiceDocument is the aggregate result of one extraction request. It is
// assembled once and never mutated afterwards. Every top-level key of the
// wire contract is always present; unavailable values serialize as null.
type InvoiceDocument struct {
	Errors                []ProcessingError `json:"error"`
	Items                 []LineItem        `json:"items"`
	Sender                Sender            `json:"sender"`
	Receiver              Receiver          `json:"receiver"`
	Company               Company           `json:"company"`
	Invoice               Invoice           `json:"invoice"`
	Bank                  Bank              `json:"bank"`
	TotalAmountInclVAT    *float64          `json:"total_amount_incl_vat"`
	SubtotalAmountExclVAT *float64          `json:"subtotal_amount_excl_vat"`
	VATAmountItem         *float64          `json:"vat_amount_item"`
	VATPercentage         *float64          `json:"vat_percentage"`
	Coordinates           []Coordinate      `json:"coordinates"`
	DataValidation        *ValidationReport `json:"data_validation"`

	// TotalsFallback marks totals sourced from the semantic extractor, whose
	// figures are not reconciled against the page. Internal only.
	TotalsFallback bool `json:"-"`
}
