package validate

import "regexp"

// vatPatterns maps an ISO country code to the shape its VAT numbers take.
// Additional countries go here; the validator is country-agnostic.
var vatPatterns = map[string]*regexp.Regexp{
	"NL": regexp.MustCompile(`^NL\d{9}B\d{2}$`),
	"BE": regexp.MustCompile(`^BE\d{10}$`),
}

// VATMatchesCountry reports whether the VAT number fits the country's
// pattern. Unknown countries never match.
func VATMatchesCountry(country, vatNumber string) bool {
	pattern, ok := vatPatterns[country]
	if !ok {
		return false
	}
	return pattern.MatchString(vatNumber)
}
