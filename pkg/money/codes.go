package money

import "strings"

// Code represents a currency code (e.g., "USD", "SGD").
type Code string

// Common currency codes
const (
	USD Code = "USD" // US Dollar, the pivot of every rate table
	EUR Code = "EUR" // Euro
	GBP Code = "GBP" // British Pound
	SGD Code = "SGD" // Singapore Dollar
	INR Code = "INR" // Indian Rupee
	AED Code = "AED" // UAE Dirham
)

// NormalizeCode trims and upper-cases a user supplied code.
func NormalizeCode(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

// IsValid checks if the currency code has the ISO 4217 shape.
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}
