package domain

import "strings"

// maxLocalDigits is the longest digit count still treated as a local number
// that needs the country prefix prepended.
const maxLocalDigits = 11

// NormalizePhone canonicalizes a raw phone string into the provider's digits
// only address format. Numbers at or below eleven digits that do not already
// carry countryPrefix get it prepended. Validation is a caller concern; the
// result is always returned, malformed input included.
func NormalizePhone(raw, countryPrefix string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if countryPrefix == "" {
		return digits
	}
	if !strings.HasPrefix(digits, countryPrefix) && len(digits) <= maxLocalDigits {
		return countryPrefix + digits
	}
	return digits
}
