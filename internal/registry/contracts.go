package registry

import "context"

// CompanyRecord is the canonical company data returned by the registry.
type CompanyRecord struct {
	RegistrationNumber string `json:"dossiernummer"`
	TradingName        string `json:"handelsnaam"`
	City               string `json:"plaats"`
	Street             string `json:"straat"`
	Postcode           string `json:"postcode"`
	HouseNumber        string `json:"huisnummer"`
}

// Lookup resolves a registration number to canonical company records.
// A failure degrades to a validation warning; the pipeline never aborts on it.
type Lookup interface {
	ByRegistrationNumber(ctx context.Context, number string) ([]CompanyRecord, error)
}
