// Package personalnumber normalizes and validates national identity numbers
// before they are sent to any external provider.
package personalnumber

import (
	"strings"
	"time"
	"unicode"
)

// Normalize strips every non-digit character and, when the remainder is the
// short 10-digit form, prefixes a century so the result is on the canonical
// YYYYMMDDXXXX form. The century is inferred from the embedded two-digit
// year: a year greater than the current year mod 100 belongs to the
// previous century.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 10 {
		return digits
	}

	year := int(digits[0]-'0')*10 + int(digits[1]-'0')
	century := "20"
	if year > time.Now().Year()%100 {
		century = "19"
	}
	return century + digits
}

// Valid reports whether raw can be normalized to a usable identity number.
// It is deliberately permissive (length only); the provider has the final
// say on whether the number exists.
func Valid(raw string) bool {
	switch len(Normalize(raw)) {
	case 10, 12:
		return true
	}
	return false
}

// ValidStrict additionally verifies the Luhn check digit over the short
// form. Opt-in via configuration for callers that want to reject typos
// before paying for a provider round trip.
func ValidStrict(raw string) bool {
	normalized := Normalize(raw)
	if len(normalized) != 12 {
		return false
	}
	return luhn(normalized[2:])
}

func luhn(digits string) bool {
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}
