// Package types provides common type aliases and utilities.
package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Quantities and amounts travel as bare JSON numbers, the way clients
	// and the stored files have always represented them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Quantity is an exact decimal stock quantity.
type Quantity = decimal.Decimal

// Money represents a monetary value (rate or amount) with full precision.
type Money = decimal.Decimal

// Zero returns the zero decimal value.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// MustDecimal creates a decimal from a string, panics on error.
// Use only for constants and tests.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsBlank reports whether a decimal input is absent or zero.
// Required numeric inputs treat zero the same as a missing value.
func IsBlank(d *decimal.Decimal) bool {
	return d == nil || d.IsZero()
}

// MaxDigits bounds both the significant digits and the exponent magnitude
// of numeric inputs.
const MaxDigits = 30

// InRange reports whether d fits within MaxDigits.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp <= MaxDigits && exp >= -MaxDigits && d.NumDigits() <= MaxDigits
}

// DateLayout is the calendar date format used for movement dates.
const DateLayout = "2006-01-02"

// Today formats now as a calendar date in the server's local zone.
func Today(now time.Time) string {
	return now.Local().Format(DateLayout)
}

// ParseDate parses a movement date. Plain calendar dates and RFC 3339
// timestamps are accepted; ok is false for anything else.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// DateKey returns the sort key for a movement date.
// Unparseable dates sort before every valid date.
func DateKey(s string) time.Time {
	t, _ := ParseDate(s)
	return t
}
