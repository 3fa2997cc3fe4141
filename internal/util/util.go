package util

import (
	"strings"
	"unicode"
)

// NormalizeEmail trims surrounding whitespace and lowercases an email so
// it can be compared and looked up deterministically.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhoneDigits strips everything but digits from a phone string.
// "0812-345-678" and "0812 345 678" normalize to the same value.
func NormalizePhoneDigits(phone string) string {
	var digits strings.Builder
	digits.Grow(len(phone))

	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	return digits.String()
}
