// Package money formats integer-cent amounts for display. Amounts are never
// floats anywhere in the system; formatting is the only place a decimal
// point appears.
package money

import "fmt"

// Format renders cents as a dollar string, en-CA style: 9000 -> "$90.00",
// -50 -> "-$0.50".
func Format(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// FormatWithCode appends the ISO currency code: 9000, "CAD" -> "$90.00 CAD".
func FormatWithCode(cents int, code string) string {
	return Format(cents) + " " + code
}
