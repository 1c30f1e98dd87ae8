// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

// NormalizePhone strips spaces, dashes and parentheses.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// E164 returns the phone with a leading '+'.
func E164(phone string) string {
	cleaned := NormalizePhone(phone)
	if cleaned == "" || strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	return "+" + cleaned
}
