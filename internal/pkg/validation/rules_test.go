package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"Bob.Smith@example.co.uk",
		"user+tag@sub.domain.org",
		"  alice@example.com  ",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@domain",
		"user name@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("abcdefg1"))
	assert.True(t, ValidPassword("Passw0rd with spaces"))

	assert.False(t, ValidPassword("short1"), "below minimum length")
	assert.False(t, ValidPassword("abcdefgh"), "no digit")
	assert.False(t, ValidPassword("12345678"), "no letter")
	assert.False(t, ValidPassword(""))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Al"))
	assert.True(t, ValidName("Mary Jane"))
	assert.True(t, ValidName("  Bo  "), "trimmed length counts")

	assert.False(t, ValidName("A"))
	assert.False(t, ValidName("   "))
	assert.False(t, ValidName(strings.Repeat("x", NameMaxLength+1)))
}
