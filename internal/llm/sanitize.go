package llm

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// SanitizeTotalsJSON
// - Coerces string amounts ("129.14", "€ 129,14", " ") to numbers or null
// - Renames known synonyms (vat_amount -> vat_amount_item)
// - Removes unknown keys (strict additionalProperties = false friendliness)
func SanitizeTotalsJSON(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 4)

	rename := func(from, to string) {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}
	rename("vat_amount", "vat_amount_item")
	rename("total", "total_amount_incl_vat")
	rename("subtotal", "subtotal_amount_excl_vat")

	amountKeys := []string{
		"total_amount_incl_vat", "subtotal_amount_excl_vat", "vat_amount_item",
	}
	for _, k := range amountKeys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			// already numeric
		case string:
			n, ok := parseAmount(t)
			if ok {
				m[k] = n
			} else {
				m[k] = nil
				dropped = append(dropped, k+"(unparsed)")
			}
		case nil:
			// explicit null is fine
		default:
			m[k] = nil
			dropped = append(dropped, k+"(type)")
		}
	}

	allowed := map[string]struct{}{
		"total_amount_incl_vat": {}, "subtotal_amount_excl_vat": {}, "vat_amount_item": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	return out, dropped, nil
}

// parseAmount strips currency noise and accepts comma decimals.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("€", "", "EUR", "", "eur", "", " ", "").Replace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
