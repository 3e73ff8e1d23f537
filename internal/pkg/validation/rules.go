package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rule parameters
var (
	// EmailPattern matches the addresses accepted at registration
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	PasswordMinLength = 8

	NameMinLength = 2
	NameMaxLength = 100
)

var emailRegex = regexp.MustCompile(EmailPattern)

// ValidEmail reports whether the address has an acceptable format.
// Matching is case-insensitive.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// ValidPassword reports whether the password meets the policy: minimum
// length, at least one letter and at least one digit.
func ValidPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// ValidName reports whether a first or last name has an acceptable length
func ValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}
