package llm

import (
	"encoding/json"
	"testing"
)

func decodeMap(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode sanitized json: %v", err)
	}
	return m
}

func TestSanitizeTotalsJSONRenamesSynonyms(t *testing.T) {
	out, dropped, err := SanitizeTotalsJSON([]byte(
		`{"total": 129.14, "subtotal": 106.73, "vat_amount": 22.41}`))
	if err != nil {
		t.Fatal(err)
	}
	m := decodeMap(t, out)

	if m["total_amount_incl_vat"] != 129.14 {
		t.Errorf("total = %v", m["total_amount_incl_vat"])
	}
	if m["subtotal_amount_excl_vat"] != 106.73 {
		t.Errorf("subtotal = %v", m["subtotal_amount_excl_vat"])
	}
	if m["vat_amount_item"] != 22.41 {
		t.Errorf("vat = %v", m["vat_amount_item"])
	}
	if len(dropped) != 3 {
		t.Errorf("dropped = %v", dropped)
	}
}

func TestSanitizeTotalsJSONCoercesStringAmounts(t *testing.T) {
	out, _, err := SanitizeTotalsJSON([]byte(
		`{"total_amount_incl_vat": "€ 129,14", "subtotal_amount_excl_vat": "106.73", "vat_amount_item": "n/a"}`))
	if err != nil {
		t.Fatal(err)
	}
	m := decodeMap(t, out)

	if m["total_amount_incl_vat"] != 129.14 {
		t.Errorf("total = %v", m["total_amount_incl_vat"])
	}
	if m["subtotal_amount_excl_vat"] != 106.73 {
		t.Errorf("subtotal = %v", m["subtotal_amount_excl_vat"])
	}
	if m["vat_amount_item"] != nil {
		t.Errorf("unparseable vat = %v, want null", m["vat_amount_item"])
	}
}

func TestSanitizeTotalsJSONStripsUnknownKeys(t *testing.T) {
	out, dropped, err := SanitizeTotalsJSON([]byte(
		`{"total_amount_incl_vat": 10, "explanation": "model chatter"}`))
	if err != nil {
		t.Fatal(err)
	}
	m := decodeMap(t, out)

	if _, ok := m["explanation"]; ok {
		t.Error("unknown key survived")
	}
	found := false
	for _, d := range dropped {
		if d == "explanation(unknown)" {
			found = true
		}
	}
	if !found {
		t.Errorf("dropped = %v", dropped)
	}
}

func TestSanitizeTotalsJSONRejectsNonJSON(t *testing.T) {
	if _, _, err := SanitizeTotalsJSON([]byte("not json")); err == nil {
		t.Error("expected decode error")
	}
}

func TestValidateTotalsSchema(t *testing.T) {
	schema := BuildTotalsJSONSchema()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"all numbers", `{"total_amount_incl_vat": 129.14, "subtotal_amount_excl_vat": 106.73, "vat_amount_item": 22.41}`, false},
		{"null amounts", `{"total_amount_incl_vat": null, "subtotal_amount_excl_vat": null}`, false},
		{"required only", `{"total_amount_incl_vat": 129.14}`, false},
		{"missing required", `{"subtotal_amount_excl_vat": 106.73}`, true},
		{"string amount", `{"total_amount_incl_vat": "129.14"}`, true},
		{"unknown key", `{"total_amount_incl_vat": 10, "note": "x"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONAgainstSchema(schema, []byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeThenValidate(t *testing.T) {
	out, _, err := SanitizeTotalsJSON([]byte(
		`{"total": "129,14", "vat_amount": "€ 22,41", "reasoning": "because"}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateJSONAgainstSchema(BuildTotalsJSONSchema(), out); err != nil {
		t.Errorf("sanitized json still rejected: %v", err)
	}
}
