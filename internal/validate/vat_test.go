package validate

import "testing"

func TestVATMatchesCountry(t *testing.T) {
	tests := []struct {
		country string
		vat     string
		want    bool
	}{
		{"NL", "NL123456789B01", true},
		{"NL", "NL004293940B01", true},
		{"NL", "12345", false},
		{"NL", "BE0123456789", false},
		{"NL", "NL123456789B1", false},
		{"BE", "BE0123456789", true},
		{"BE", "BE123", false},
		{"DE", "DE129273398", false},
		{"", "NL123456789B01", false},
	}
	for _, tt := range tests {
		if got := VATMatchesCountry(tt.country, tt.vat); got != tt.want {
			t.Errorf("VATMatchesCountry(%q, %q) = %v, want %v", tt.country, tt.vat, got, tt.want)
		}
	}
}
