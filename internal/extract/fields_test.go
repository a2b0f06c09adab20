package extract

import (
	"testing"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

func blockOf(texts ...string) entity.TextBlock {
	block := make(entity.TextBlock, 0, len(texts))
	for i, text := range texts {
		block = append(block, entity.Token{Text: text, X: 50, Y: 50 + i*18, Width: 120, Height: 13})
	}
	return block
}

func TestExtractSenderFromAddressBlock(t *testing.T) {
	blocks := []entity.TextBlock{
		blockOf("Bouwmaat Haarlem XL", "A. Hofmanweg 3-A", "2031 BH Haarlem", "www.bouwmaat.nl"),
	}
	d := ExtractDetails(blocks, "")

	if d.Sender.Company != "Bouwmaat Haarlem XL" {
		t.Errorf("company = %q", d.Sender.Company)
	}
	if d.Sender.Address != "A. Hofmanweg 3-A" {
		t.Errorf("address = %q", d.Sender.Address)
	}
	if d.Sender.Postcode != "2031 BH" {
		t.Errorf("postcode = %q", d.Sender.Postcode)
	}
	if d.Sender.City != "Haarlem" {
		t.Errorf("city = %q", d.Sender.City)
	}
	if d.Sender.Website != "www.bouwmaat.nl" {
		t.Errorf("website = %q", d.Sender.Website)
	}
}

func TestExtractReceiverBlock(t *testing.T) {
	blocks := []entity.TextBlock{
		blockOf("T.a.v.", "Rubo-ingenieurs", "Oosterstraat 9b", "2042 VE Zandvoort"),
	}
	d := ExtractDetails(blocks, "")

	if d.Receiver.Company != "Rubo-ingenieurs" {
		t.Errorf("company = %q", d.Receiver.Company)
	}
	if d.Receiver.Address != "Oosterstraat 9b" {
		t.Errorf("address = %q", d.Receiver.Address)
	}
	if d.Receiver.Postcode != "2042 VE" {
		t.Errorf("postcode = %q", d.Receiver.Postcode)
	}
	if d.Receiver.City != "Zandvoort" {
		t.Errorf("city = %q", d.Receiver.City)
	}
}

func TestExtractPatternFields(t *testing.T) {
	raw := "Factuurnummer 1018876\nDatum 10-06-2024\nBTW NL004293940B01\nKvK: 30055682\nIBAN NL91ABNA0417164300"
	d := ExtractDetails(nil, raw)

	if d.InvoiceNo != "1018876" {
		t.Errorf("invoice number = %q, want 1018876", d.InvoiceNo)
	}
	if d.Date != "10-06-2024" {
		t.Errorf("date = %q, want 10-06-2024", d.Date)
	}
	if d.VATNumber != "NL004293940B01" {
		t.Errorf("vat = %q", d.VATNumber)
	}
	if d.KVKNumber != "30055682" {
		t.Errorf("kvk = %q", d.KVKNumber)
	}
	if d.IBAN != "NL91ABNA0417164300" {
		t.Errorf("iban = %q", d.IBAN)
	}
	if d.Country != "NL" {
		t.Errorf("country = %q, want NL", d.Country)
	}
}

func TestExtractBelgianVAT(t *testing.T) {
	d := ExtractDetails(nil, "BTW BE0123456789")
	if d.VATNumber != "BE0123456789" {
		t.Errorf("vat = %q", d.VATNumber)
	}
	if d.Country != "BE" {
		t.Errorf("country = %q, want BE", d.Country)
	}
}

func TestExtractAccountHolderNearIBAN(t *testing.T) {
	raw := "IBAN NL91ABNA0417164300 t.n.v. Jansen BV"
	d := ExtractDetails(nil, raw)
	if d.Holder != "Jansen BV" {
		t.Errorf("holder = %q, want %q", d.Holder, "Jansen BV")
	}
}

func TestDetermineCountry(t *testing.T) {
	tests := []struct {
		name string
		text string
		vat  string
		want string
	}{
		{"vat prefix wins", "gevestigd in belgie", "NL004293940B01", "NL"},
		{"belgian vat", "", "BE0123456789", "BE"},
		{"dutch keyword", "gevestigd in nederland", "", "NL"},
		{"belgian keyword", "gevestigd in belgie", "", "BE"},
		{"nothing known", "", "", "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineCountry(tt.text, tt.vat); got != tt.want {
				t.Errorf("DetermineCountry(%q, %q) = %q, want %q", tt.text, tt.vat, got, tt.want)
			}
		})
	}
}

func TestDeterminePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		paid       bool
		method     string
		confidence float64
	}{
		{"explicit paid", "factuur betaald op 01-07", true, "", 0.9},
		{"paid with method", "betaald per pin", true, "pin", 0.9},
		{"method only", "via ideal overgemaakt", true, "ideal", 0.7},
		{"outstanding", "openstaand bedrag", false, "", 0.3},
		{"no signal", "geen informatie", false, "", 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := DeterminePaymentStatus(tt.text)
			if info.Paid != tt.paid {
				t.Errorf("paid = %v, want %v", info.Paid, tt.paid)
			}
			if info.Method != tt.method {
				t.Errorf("method = %q, want %q", info.Method, tt.method)
			}
			if info.Confidence != tt.confidence {
				t.Errorf("confidence = %v, want %v", info.Confidence, tt.confidence)
			}
		})
	}
}
